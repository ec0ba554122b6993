package entity

const StatusAvailable = "available"

type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year"`
	Genre           string `json:"genre"`
	CopiesAvailable int    `json:"copies_available"`
	Status          string `json:"status"`
}
