package layout

import (
	"context"

	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

// ITemplateStore defines the template catalog operations used by controllers
type ITemplateStore interface {
	Discover(ctx context.Context) error
	List() []model.Template
	Get(id string) (model.Template, bool)
	SaveLayout(ctx context.Context, id string, fields map[string]model.Position, qr *model.QRPlacement) (model.Template, error)
	Image(id string) ([]byte, error)
}

// Ensure Store implements ITemplateStore
var _ ITemplateStore = (*Store)(nil)

// MockTemplateStore is a mock implementation for testing
type MockTemplateStore struct {
	DiscoverFunc   func(ctx context.Context) error
	ListFunc       func() []model.Template
	GetFunc        func(id string) (model.Template, bool)
	SaveLayoutFunc func(ctx context.Context, id string, fields map[string]model.Position, qr *model.QRPlacement) (model.Template, error)
	ImageFunc      func(id string) ([]byte, error)
}

var _ ITemplateStore = (*MockTemplateStore)(nil)

func NewMockTemplateStore() *MockTemplateStore {
	return &MockTemplateStore{}
}

func (m *MockTemplateStore) Discover(ctx context.Context) error {
	if m.DiscoverFunc != nil {
		return m.DiscoverFunc(ctx)
	}
	return nil
}

func (m *MockTemplateStore) List() []model.Template {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil
}

func (m *MockTemplateStore) Get(id string) (model.Template, bool) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return model.Template{}, false
}

func (m *MockTemplateStore) SaveLayout(ctx context.Context, id string, fields map[string]model.Position, qr *model.QRPlacement) (model.Template, error) {
	if m.SaveLayoutFunc != nil {
		return m.SaveLayoutFunc(ctx, id, fields, qr)
	}
	return model.Template{}, nil
}

func (m *MockTemplateStore) Image(id string) ([]byte, error) {
	if m.ImageFunc != nil {
		return m.ImageFunc(id)
	}
	return nil, nil
}
