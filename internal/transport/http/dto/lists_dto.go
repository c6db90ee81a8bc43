package dto

type CreateListRequest struct {
	Title string `json:"title" validate:"required"`
}

type UpdateListRequest struct {
	Title string `json:"title" validate:"required"`
}
