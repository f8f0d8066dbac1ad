package request

// ReceiptQuery selects how a receipt is rendered
type ReceiptQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=json html text"`
}
