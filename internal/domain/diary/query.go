package diary

// ProductQuery is a recent free-text search. LastUsedAt is epoch seconds.
type ProductQuery struct {
	Query      string `gorm:"primaryKey" json:"query"`
	LastUsedAt int64  `gorm:"not null;index" json:"last_used_at"`
}

func (ProductQuery) TableName() string { return "product_query" }

// RemoteKey is the paging cursor of one remote search. A nil NextPage means
// nothing has been loaded yet.
type RemoteKey struct {
	QueryKey        string `gorm:"primaryKey" json:"query_key"`
	NextPage        *int   `json:"next_page,omitempty"`
	EndOfPagination bool   `gorm:"not null;default:false" json:"end_of_pagination"`
	UpdatedAt       int64  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (RemoteKey) TableName() string { return "remote_key" }

type Preference struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

func (Preference) TableName() string { return "preference" }
