package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	MAX_PAGE_SIZE = 100
	MIN_PAGE_SIZE = 10

	CONTACTS_PAGE_SIZE = 10
)

type BaseModel struct {
	ID        uint      `json:"id,omitempty" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type Paging struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
}

// InRange reports whether the requested page exists
func (paging *Paging) InRange() bool {
	return paging.Page >= 1 && paging.Page <= paging.Pages
}

func (paging *Paging) NextPage() *int64 {
	if paging.Page >= paging.Pages {
		return nil
	}
	next := paging.Page + 1
	return &next
}

func (paging *Paging) PreviousPage() *int64 {
	if paging.Page <= 1 {
		return nil
	}
	previous := paging.Page - 1
	return &previous
}

// ---------------------------------------------------------------------------------//
// Scopes
// --------------------------------------------------------------------------------//

func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 {
			page = 1
		}

		switch {
		case pageSize > MAX_PAGE_SIZE:
			pageSize = MAX_PAGE_SIZE
		case pageSize <= 0:
			pageSize = MIN_PAGE_SIZE
		}

		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}

func ownedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

func orderedByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

// newPaging returns the paging for 'page'. An empty result set still has one page.
func newPaging(page, pageSize, total int64) *Paging {
	paging := &Paging{Page: page, Total: total}

	paging.Pages = int64(math.Ceil(float64(paging.Total) / float64(pageSize)))
	if paging.Pages == 0 {
		paging.Pages = 1
	}

	return paging
}
