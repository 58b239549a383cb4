package dto

// PositionRequest payload for creating or updating a position.
type PositionRequest struct {
	Name   string `json:"postname"`
	Level  string `json:"level"`
	Sort   int64  `json:"sort"`
	Remark string `json:"remark"`
}

// PositionResponse is a single position row.
type PositionResponse struct {
	PositionID int64  `json:"post_id"`
	Name       string `json:"postname"`
	Level      string `json:"level"`
	Sort       int64  `json:"sort"`
	Remark     string `json:"remark"`
	CreatedAt  string `json:"create_time"`
}

// PositionListResponse is a paginated position listing.
type PositionListResponse struct {
	Total int64              `json:"total"`
	List  []PositionResponse `json:"list"`
}
