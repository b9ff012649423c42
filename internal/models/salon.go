package models

import "time"

// Configuración del salón: granularidad de slots y ventanas de antelación
// son valores editables por el owner, no constantes del código.
type Salon struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:64" json:"timezone"`

	SlotGranularityMin int `gorm:"default:30" json:"slot_granularity_min"`
	MinAdvanceMin      int `gorm:"default:60" json:"min_advance_min"`
	CancelNoticeMin    int `gorm:"default:120" json:"cancel_notice_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
