package catalog

import "time"

// Product is a single catalog entry with its child collections loaded.
// Child rows keep the order they were collected in through their
// position column.
type Product struct {
	UID          string    `db:"uid"`
	Title        string    `db:"title"`
	DisplayTitle string    `db:"display_title"`
	URL          string    `db:"url"`
	Description  string    `db:"description"`
	Tagline      string    `db:"tagline"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`

	Specs        []ProductSpec       `db:"-"`
	Prices       []ProductPrice      `db:"-"`
	Technologies []ProductTechnology `db:"-"`
	Features     []ProductFeature    `db:"-"`
}

type ProductSpec struct {
	ProductUID string `db:"product_uid"`
	Position   int    `db:"position"`
	SpecID     string `db:"spec_id"`
	Title      string `db:"title"`
	Value      string `db:"value"`
}

type ProductPrice struct {
	ProductUID string `db:"product_uid"`
	Position   int    `db:"position"`
	Region     string `db:"region"`
	Price      string `db:"price"`
}

type ProductTechnology struct {
	ProductUID string `db:"product_uid"`
	Position   int    `db:"position"`
	Title      string `db:"title"`
	Content    string `db:"content"`
}

type ProductFeature struct {
	ProductUID string `db:"product_uid"`
	Position   int    `db:"position"`
	GroupTitle string `db:"group_title"`
	Content    string `db:"content"`
}
