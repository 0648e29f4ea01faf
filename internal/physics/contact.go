package physics

import (
	"arbowling/internal/components"
	"arbowling/internal/engine"
)

// Contact describes two bodies that started touching this step. A is the
// older of the two objects.
type Contact struct {
	A, B *engine.GameObject
}

// ContactDelegate receives contact-begin notifications for pairs whose
// bitmasks ask for them.
type ContactDelegate interface {
	BeginContact(c Contact)
}

// ContactDelegateFunc adapts a function to ContactDelegate.
type ContactDelegateFunc func(c Contact)

func (f ContactDelegateFunc) BeginContact(c Contact) { f(c) }

// Masks returns the category and contact-test masks for g. Bodies without a
// rigidbody are static surfaces.
func Masks(g *engine.GameObject) (category, contactTest uint32) {
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
		return rb.CategoryMask, rb.ContactTestMask
	}
	return components.CategoryStatic, 0
}

// ShouldReportContact reports whether either body's contact-test mask
// overlaps the other's category.
func ShouldReportContact(a, b *engine.GameObject) bool {
	catA, testA := Masks(a)
	catB, testB := Masks(b)
	return catA&testB != 0 || catB&testA != 0
}
