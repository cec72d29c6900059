package api

// Wire shapes of the backend. Field names follow the backend exactly, including
// its inconsistencies (PascalCase resources, camelCase users, the misspelled
// Ammount); nothing outside this package sees them.

// LoginRequestDTO is the login body.
type LoginRequestDTO struct {
	Login    string `json:"Login" binding:"required"`
	Password string `json:"Password" binding:"required"`
}

// LoginResponseDTO is the login reply. Some backend builds return the user flat
// next to the token, others nest it under "user"; both are accepted.
type LoginResponseDTO struct {
	Token        string   `json:"token"`
	ID           int64    `json:"id,omitempty"`
	Name         string   `json:"name,omitempty"`
	Surname      string   `json:"surname,omitempty"`
	Login        string   `json:"login,omitempty"`
	UserRoleID   int64    `json:"userRoleID,omitempty"`
	CreationDate string   `json:"creationDate,omitempty"`
	User         *UserDTO `json:"user,omitempty"`
}

// UserDTO is a user as the backend reports it.
type UserDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Login        string `json:"login"`
	Age          int    `json:"age"`
	UserRoleID   int64  `json:"userRoleID"`
	CreationDate string `json:"creationDate,omitempty"`
}

// UserWriteDTO is the body of user create and update.
type UserWriteDTO struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name" binding:"required,max=100"`
	Surname  string `json:"surname" binding:"max=100"`
	Login    string `json:"login" binding:"required,max=255"`
	Password string `json:"password,omitempty"`
	Age      int    `json:"age" binding:"gte=0,lte=150"`
}

// AccountDTO is a finance account. Ammount is the backend's spelling of balance.
type AccountDTO struct {
	ID          int64   `json:"Id"`
	UserID      int64   `json:"UserID"`
	Name        string  `json:"Name" binding:"required,min=1,max=100"`
	Currency    string  `json:"Currency" binding:"required,iso4217"`
	Ammount     float64 `json:"Ammount"`
	Description string  `json:"Description" binding:"max=500"`
}

// CategoryDTO is a transaction category.
type CategoryDTO struct {
	ID           int64    `json:"Id"`
	CategoryName string   `json:"CategoryName" binding:"required,min=1,max=100"`
	Type         string   `json:"Type" binding:"required,category_type"`
	Color        string   `json:"Color,omitempty" binding:"omitempty,hex_color"`
	Description  string   `json:"Description,omitempty" binding:"max=500"`
	Budget       *float64 `json:"Budget,omitempty"`
}

// TransactionDTO is a transaction. Amount is unsigned; Type gives the direction.
type TransactionDTO struct {
	ID          int64   `json:"Id"`
	AccountID   int64   `json:"AccountID" binding:"required"`
	CategoryID  int64   `json:"CategoryID" binding:"required"`
	Amount      float64 `json:"Amount" binding:"gt=0"`
	Type        string  `json:"Type" binding:"required,category_type"`
	Date        string  `json:"Date"`
	Description string  `json:"Description" binding:"required,max=255"`
	Notes       string  `json:"Notes,omitempty" binding:"max=1000"`
}

// ReportEntryDTO is one category line of a report.
type ReportEntryDTO struct {
	CategoryID   int64   `json:"CategoryID"`
	CategoryName string  `json:"CategoryName"`
	TotalAmount  float64 `json:"TotalAmount"`
}
