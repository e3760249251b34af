package model

// MediaObject is one object written to storage. The ledger lets the sweep
// task find objects no listing references anymore (crashed submissions,
// best-effort deletes that failed).
type MediaObject struct {
	BaseModel
	URL  string `gorm:"size:2048;uniqueIndex;not null" json:"url"`
	Kind string `gorm:"size:10;index" json:"kind"` // photo / video
}

func (*MediaObject) TableName() string {
	return "media_objects"
}
