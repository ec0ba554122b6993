package entity

import "time"

// BorrowRecord is a borrow transaction linking a user and a book. Returned
// records keep their row in the database with return_date set; the API only
// ever serves active ones. Username is filled only on the admin-wide lists.
type BorrowRecord struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Username   string    `json:"username,omitempty"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `json:"due_date"`
}
