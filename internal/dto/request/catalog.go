package request

// BuyRequest carries any integer id; ids with no product resolve to not found.
type BuyRequest struct {
	ProductID int64 `json:"product_id"`
}
