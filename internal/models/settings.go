package models

import "time"

// Settings documents are singletons keyed by name in the "settings"
// collection ("smtp", "commission").

type SMTPSettings struct {
	Key         string    `bson:"key" json:"-"`
	Host        string    `bson:"host" json:"host" validate:"required"`
	Port        int       `bson:"port" json:"port" validate:"required,gt=0"`
	Username    string    `bson:"username" json:"username"`
	Password    string    `bson:"password" json:"-"`
	FromAddress string    `bson:"from_address" json:"from_address" validate:"required,email"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type CommissionSettings struct {
	Key       string    `bson:"key" json:"-"`
	Percent   float64   `bson:"percent" json:"percent" validate:"gte=0,lte=100"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
