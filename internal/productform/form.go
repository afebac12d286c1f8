// Package productform holds the admin product editor: form state, tag and image
// staging, and the submission workflow against the catalog service.
package productform

import (
	"github.com/klassico/storefront/internal/models"
	"github.com/klassico/storefront/internal/slug"
)

// Form is the editable state of a product. Each field has an explicit setter.
type Form struct {
	name        string
	slug        string
	description string
	price       string
	categoryID  string
	inStock     bool
	featured    bool
	tagInput    string
	tags        *TagList
	image       ImageStage

	slugManuallyEdited bool
	existing           *models.Product
}

// New returns an empty form for a new product.
func New() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// Load returns a form prefilled for editing p.
func Load(p models.Product) *Form {
	f := New()
	f.Load(p)
	return f
}

func (f *Form) Reset() {
	*f = Form{inStock: true, tags: NewTagList()}
}

func (f *Form) Load(p models.Product) {
	f.Reset()
	existing := p
	f.existing = &existing
	f.name = p.Name
	f.slug = p.Slug
	f.description = p.Description
	f.price = p.Price.String()
	f.categoryID = p.CategoryID
	f.inStock = p.InStock
	f.featured = p.Featured
	f.tags = NewTagList(p.Tags...)
	f.image.showPersisted(p.ImageURL)
	f.slugManuallyEdited = p.Slug != "" && p.Slug != slug.Derive(p.Name)
}

// Existing is the product being edited, or nil for a new product.
func (f *Form) Existing() *models.Product { return f.existing }

func (f *Form) Editing() bool { return f.existing != nil }

func (f *Form) Name() string { return f.name }

// SetName updates the name and re-derives the slug unless it was edited by hand.
func (f *Form) SetName(name string) {
	f.name = name
	if !f.slugManuallyEdited {
		f.slug = slug.Derive(name)
	}
}

func (f *Form) Slug() string { return f.slug }

// SetSlug overrides the slug. Clearing it hands control back to SetName.
func (f *Form) SetSlug(s string) {
	f.slug = s
	f.slugManuallyEdited = s != ""
}

func (f *Form) SlugManuallyEdited() bool { return f.slugManuallyEdited }

func (f *Form) Description() string { return f.description }

func (f *Form) SetDescription(d string) { f.description = d }

// Price is the raw text as typed.
func (f *Form) Price() string { return f.price }

func (f *Form) SetPrice(p string) { f.price = p }

func (f *Form) CategoryID() string { return f.categoryID }

func (f *Form) SelectCategory(id string) { f.categoryID = id }

func (f *Form) InStock() bool { return f.inStock }

func (f *Form) SetInStock(v bool) { f.inStock = v }

func (f *Form) Featured() bool { return f.featured }

func (f *Form) SetFeatured(v bool) { f.featured = v }

func (f *Form) TagInput() string { return f.tagInput }

func (f *Form) SetTagInput(s string) { f.tagInput = s }

// AddTag moves the pending tag input into the tag list.
func (f *Form) AddTag() bool {
	if !f.tags.Add(f.tagInput) {
		return false
	}
	f.tagInput = ""
	return true
}

func (f *Form) RemoveTag(tag string) { f.tags.Remove(tag) }

func (f *Form) Tags() []string { return f.tags.Values() }

func (f *Form) SelectImage(file File) { f.image.Select(file) }

func (f *Form) DropImage(file File) error { return f.image.Drop(file) }

func (f *Form) ClearImage() { f.image.Remove() }

func (f *Form) DragEnter() { f.image.DragEnter() }

func (f *Form) DragLeave() { f.image.DragLeave() }

func (f *Form) Dragging() bool { return f.image.Dragging() }

func (f *Form) ImagePreview() string { return f.image.Preview() }

func (f *Form) PendingImage() (File, bool) { return f.image.Pending() }
