package pagination

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Pagination carries cursor paging parameters through query binding.
type Pagination struct {
	PageToken string `form:"page_token" json:"page_token"`
	PageSize  int    `form:"page_size" json:"page_size"`
}

// Cursor is the decoded page token payload.
type Cursor struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

// PageInfo describes the page returned to the caller.
type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(c Cursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func DecodeCursor(token string) (Cursor, error) {
	var c Cursor
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, err
	}
	return c, nil
}

// Apply narrows stmt to the cursor position and fetches one extra row so the
// caller can detect a following page.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	size := p.PageSize
	if size <= 0 {
		size = 50
	}
	if p.PageToken != "" {
		cursor, err := DecodeCursor(p.PageToken)
		if err == nil {
			if at, perr := time.Parse(time.RFC3339, cursor.CreatedAt); perr == nil {
				stmt = stmt.Where("(created_at, id) < (?, ?)", at, cursor.ID)
			}
		}
	}
	return stmt.Limit(size + 1)
}

// BuildCursorPageInfo derives PageInfo from a fetched slice that may contain
// one extra row beyond pageSize.
func BuildCursorPageInfo[T any](items []T, pageSize int, token func(T) string) *PageInfo {
	if pageSize <= 0 {
		pageSize = 50
	}
	if len(items) <= pageSize {
		return &PageInfo{}
	}
	last := items[pageSize-1]
	return &PageInfo{
		NextPageToken: token(last),
		HasMore:       true,
	}
}
