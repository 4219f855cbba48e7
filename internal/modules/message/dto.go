package message

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required,gt=0"`
	DesignID   int64  `json:"design_id" binding:"required,gt=0"`
	Content    string `json:"content" binding:"required,max=4000"`
}
