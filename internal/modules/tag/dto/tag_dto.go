package dto

type CreateTagRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=50"`
}

type TagFilter struct {
	Search string `form:"search"`
}

type DeleteTagRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
