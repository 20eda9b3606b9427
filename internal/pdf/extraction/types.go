package extraction

import (
	"context"
	"fmt"
)

// UnknownFieldName is used for widgets that carry no /T entry
const UnknownFieldName = "Unknown"

// Rect is an annotation rectangle in PDF user space, as written in the file:
// (x1, y1) and (x2, y2) are not normalized to lower-left / upper-right.
type Rect [4]float64

// X1 returns the first x coordinate
func (r Rect) X1() float64 { return r[0] }

// Y1 returns the first y coordinate
func (r Rect) Y1() float64 { return r[1] }

// X2 returns the second x coordinate
func (r Rect) X2() float64 { return r[2] }

// Y2 returns the second y coordinate
func (r Rect) Y2() float64 { return r[3] }

// String formats the rectangle as (x1, y1, x2, y2) with two decimals
func (r Rect) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", r.X1(), r.Y1(), r.X2(), r.Y2())
}

// ObjectID identifies the indirect object a field was read from
type ObjectID struct {
	Number     int `json:"number" yaml:"number"`
	Generation int `json:"generation" yaml:"generation"`
}

// String returns the "N G R" reference form
func (id ObjectID) String() string {
	return fmt.Sprintf("%d %d R", id.Number, id.Generation)
}

// FieldRecord is one widget annotation with its geometric center
type FieldRecord struct {
	Name    string    `json:"name" yaml:"name"`
	Rect    Rect      `json:"rect" yaml:"rect,flow"`
	CenterX float64   `json:"center_x" yaml:"center_x"`
	CenterY float64   `json:"center_y" yaml:"center_y"`
	Object  *ObjectID `json:"object,omitempty" yaml:"object,omitempty"`
	Page    int       `json:"page,omitempty" yaml:"page,omitempty"`
}

// NewFieldRecord builds a record and computes its center once. Callers pass
// UnknownFieldName when the widget has no /T entry; an empty /T () stays empty.
func NewFieldRecord(name string, rect Rect) FieldRecord {
	return FieldRecord{
		Name:    name,
		Rect:    rect,
		CenterX: rect[0] + (rect[2]-rect[0])/2,
		CenterY: rect[1] + (rect[3]-rect[1])/2,
	}
}

// Extractor produces the widget annotations of a PDF file in no particular order
type Extractor interface {
	Extract(ctx context.Context, path string) ([]FieldRecord, error)
}
