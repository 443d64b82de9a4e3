package madshus

import (
	"encoding/json"
	"strings"
)

type graphqlRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type productGridData struct {
	PaginatedProductGrid struct {
		Products []ProductSummary `json:"products"`
		Total    int              `json:"total"`
	} `json:"paginatedProductGrid"`
}

type productData struct {
	Product *ProductDetail `json:"product"`
}

// ProductSummary is a single entry of the paginated product grid.
type ProductSummary struct {
	UID          string `json:"uid"`
	Title        string `json:"title"`
	DisplayTitle string `json:"display_title"`
	URL          string `json:"url"`
}

// ProductDetail is the full product payload of the GetProduct operation.
type ProductDetail struct {
	UID          string             `json:"uid"`
	Title        string             `json:"title"`
	DisplayTitle string             `json:"display_title"`
	URL          string             `json:"url"`
	Description  string             `json:"description"`
	Tagline      string             `json:"tagline"`
	Specs        []SpecEntry        `json:"updated_product_specs"`
	Prices       map[string]*string `json:"prices"`
	Details      ProductDetails     `json:"details"`
}

type ProductDetails struct {
	Technology     TechnologyList `json:"technology"`
	FeatureDetails []FeatureGroup `json:"feature_details"`
}

// SpecEntry is one row of the updated_product_specs field.
type SpecEntry struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Value SpecValue `json:"value"`
}

// SpecValue accepts both forms the API uses for spec values, a single
// string or a list of strings.
type SpecValue struct {
	parts []string
}

func (v *SpecValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			v.parts = []string{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}

	v.parts = list
	return nil
}

// String renders multi-value specs as a single ", " separated string.
func (v SpecValue) String() string {
	return strings.Join(v.parts, ", ")
}

// Technology is one technology section of the product details.
type Technology struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// TechnologyList accepts both forms the API uses for the
// details.technology field, a single object or a list.
type TechnologyList []Technology

func (l *TechnologyList) UnmarshalJSON(data []byte) error {
	var list []Technology
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var single Technology
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	*l = TechnologyList{single}
	return nil
}

type FeatureGroup struct {
	GroupTitle string        `json:"group_title"`
	Group      []FeatureItem `json:"group"`
}

type FeatureItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
