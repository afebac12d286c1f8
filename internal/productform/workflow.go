package productform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/klassico/storefront/internal/logger"
	"github.com/klassico/storefront/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductsTag is the cache tag shared by every product listing.
const ProductsTag = "products"

const (
	MsgNotLoggedIn       = "You must be logged in to perform this action"
	MsgNameRequired      = "Product name is required"
	MsgCategoryRequired  = "Please select a category"
	MsgInvalidPrice      = "Please enter a valid price"
	MsgCreateFailed      = "Failed to create product"
	MsgUpdateFailed      = "Failed to update product"
	MsgImageUploadFailed = "Image upload failed"
	MsgNotAnImage        = "Please upload an image file"
	MsgCreated           = "Product created successfully"
	MsgUpdated           = "Product updated successfully"
)

var (
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNameRequired     = errors.New("name is required")
	ErrCategoryRequired = errors.New("category is required")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrSaveFailed       = errors.New("service did not return the saved product")
)

// DataService is the remote catalog. A nil product or empty image reference with
// a nil error means the service refused the request.
type DataService interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, p models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	UploadProductImage(ctx context.Context, file File, productID string) (string, error)
}

type CacheInvalidator interface {
	InvalidateTag(ctx context.Context, tag string) error
}

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Session interface {
	Authenticated() bool
}

type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseValidating     Phase = "validating"
	PhaseSavingRecord   Phase = "saving-record"
	PhaseUploadingImage Phase = "uploading-image"
	PhaseReconciling    Phase = "reconciling"
	PhaseFailed         Phase = "failed"
)

// Outcome describes a finished submission.
type Outcome struct {
	Product     *models.Product
	ImageURL    string
	ImageFailed bool
}

type Workflow struct {
	service  DataService
	cache    CacheInvalidator
	notifier Notifier
	session  Session

	onClose func()
	onPhase func(Phase)
	log     *zap.Logger

	saving atomic.Bool
}

type Option func(*Workflow)

// WithOnClose sets the callback run after a successful submission.
func WithOnClose(fn func()) Option {
	return func(w *Workflow) { w.onClose = fn }
}

// WithPhaseHook observes every phase transition.
func WithPhaseHook(fn func(Phase)) Option {
	return func(w *Workflow) { w.onPhase = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(w *Workflow) { w.log = l }
}

func NewWorkflow(service DataService, cache CacheInvalidator, notifier Notifier, session Session, opts ...Option) *Workflow {
	w := &Workflow{
		service:  service,
		cache:    cache,
		notifier: notifier,
		session:  session,
		log:      logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Saving reports whether a submission is in flight.
func (w *Workflow) Saving() bool {
	return w.saving.Load()
}

func (w *Workflow) enter(p Phase) {
	if w.onPhase != nil {
		w.onPhase(p)
	}
}

func (w *Workflow) fail(msg string, err error) error {
	w.notifier.Error(msg)
	w.enter(PhaseFailed)
	w.enter(PhaseIdle)
	return err
}

// DropImage stages a dragged file on the form, notifying when it is not an image.
func (w *Workflow) DropImage(f *Form, file File) error {
	if err := f.DropImage(file); err != nil {
		w.notifier.Error(MsgNotAnImage)
		return err
	}
	return nil
}

func (w *Workflow) validate(f *Form) (decimal.Decimal, string, error) {
	if w.session == nil || !w.session.Authenticated() {
		return decimal.Decimal{}, MsgNotLoggedIn, ErrNotAuthenticated
	}
	if strings.TrimSpace(f.Name()) == "" {
		return decimal.Decimal{}, MsgNameRequired, ErrNameRequired
	}
	if f.CategoryID() == "" {
		return decimal.Decimal{}, MsgCategoryRequired, ErrCategoryRequired
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price()))
	if err != nil || price.IsNegative() {
		return decimal.Decimal{}, MsgInvalidPrice, ErrInvalidPrice
	}
	return price, "", nil
}

func payload(f *Form, price decimal.Decimal) models.Product {
	p := models.Product{
		Name:        f.Name(),
		Slug:        f.Slug(),
		Description: f.Description(),
		Price:       price,
		CategoryID:  f.CategoryID(),
		InStock:     f.InStock(),
		Featured:    f.Featured(),
		Tags:        f.Tags(),
	}
	if existing := f.Existing(); existing != nil && existing.ImageURL != nil {
		url := *existing.ImageURL
		p.ImageURL = &url
	}
	return p
}

// Submit validates the form, saves the product, uploads a staged image and
// invalidates product listings. An image failure does not undo the saved record.
func (w *Workflow) Submit(ctx context.Context, f *Form) (Outcome, error) {
	if !w.saving.CompareAndSwap(false, true) {
		return Outcome{}, ErrSubmitInProgress
	}
	defer w.saving.Store(false)

	w.enter(PhaseValidating)
	price, msg, err := w.validate(f)
	if err != nil {
		return Outcome{}, w.fail(msg, err)
	}

	w.enter(PhaseSavingRecord)
	data := payload(f, price)
	editing := f.Existing() != nil

	var saved *models.Product
	if editing {
		saved, err = w.service.UpdateProduct(ctx, f.Existing().ID, models.PatchFrom(data))
	} else {
		saved, err = w.service.CreateProduct(ctx, data)
	}
	if err != nil {
		w.log.Error("Error saving product", zap.Error(err))
		return Outcome{}, w.fail("Error saving product: "+err.Error(), err)
	}
	if saved == nil {
		if editing {
			return Outcome{}, w.fail(MsgUpdateFailed, ErrSaveFailed)
		}
		return Outcome{}, w.fail(MsgCreateFailed, ErrSaveFailed)
	}
	w.log.Info("Product saved", zap.String("product_id", saved.ID), zap.Bool("editing", editing))

	outcome := Outcome{Product: saved}
	if file, ok := f.PendingImage(); ok {
		w.enter(PhaseUploadingImage)
		url, err := w.uploadImage(ctx, file, saved)
		if err != nil {
			w.log.Warn("Error uploading image", zap.String("product_id", saved.ID), zap.Error(err))
			w.notifier.Error(MsgImageUploadFailed)
			outcome.ImageFailed = true
		} else {
			outcome.ImageURL = url
		}
	}

	w.enter(PhaseReconciling)
	if w.cache != nil {
		if err := w.cache.InvalidateTag(ctx, ProductsTag); err != nil {
			w.log.Warn("Failed to invalidate product listings", zap.Error(err))
		}
	}
	if editing {
		w.notifier.Success(MsgUpdated)
	} else {
		w.notifier.Success(MsgCreated)
	}
	if w.onClose != nil {
		w.onClose()
	}
	w.enter(PhaseIdle)
	return outcome, nil
}

// uploadImage stores file for the saved product and records its URL on the product.
func (w *Workflow) uploadImage(ctx context.Context, file File, saved *models.Product) (string, error) {
	url, err := w.service.UploadProductImage(ctx, file, saved.ID)
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", errors.New("service returned no image reference")
	}

	updated, err := w.service.UpdateProduct(ctx, saved.ID, models.ProductPatch{ImageURL: &url})
	if err != nil {
		return "", fmt.Errorf("recording image url: %w", err)
	}
	if updated != nil {
		*saved = *updated
	}
	return url, nil
}
