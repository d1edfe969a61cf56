package certificate

import (
	"context"

	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

// ILedger defines the ledger operations used by the generator and controllers
type ILedger interface {
	Append(ctx context.Context, records []model.CertificateRecord) error
	All() []model.CertificateRecord
	FindByEmail(email string) []model.CertificateRecord
	FindByID(id string) (model.CertificateRecord, bool)
	FindByFileName(name string) (model.CertificateRecord, bool)
}

// IGenerator defines the batch generation operation used by controllers
type IGenerator interface {
	Generate(ctx context.Context, in Input) (*Result, error)
}

var (
	_ ILedger    = (*Ledger)(nil)
	_ IGenerator = (*Generator)(nil)
)

// MockLedger is a mock implementation for testing
type MockLedger struct {
	AppendFunc         func(ctx context.Context, records []model.CertificateRecord) error
	AllFunc            func() []model.CertificateRecord
	FindByEmailFunc    func(email string) []model.CertificateRecord
	FindByIDFunc       func(id string) (model.CertificateRecord, bool)
	FindByFileNameFunc func(name string) (model.CertificateRecord, bool)
}

var _ ILedger = (*MockLedger)(nil)

func NewMockLedger() *MockLedger {
	return &MockLedger{}
}

func (m *MockLedger) Append(ctx context.Context, records []model.CertificateRecord) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, records)
	}
	return nil
}

func (m *MockLedger) All() []model.CertificateRecord {
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return nil
}

func (m *MockLedger) FindByEmail(email string) []model.CertificateRecord {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	return nil
}

func (m *MockLedger) FindByID(id string) (model.CertificateRecord, bool) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return model.CertificateRecord{}, false
}

func (m *MockLedger) FindByFileName(name string) (model.CertificateRecord, bool) {
	if m.FindByFileNameFunc != nil {
		return m.FindByFileNameFunc(name)
	}
	return model.CertificateRecord{}, false
}

// MockGenerator is a mock implementation for testing
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, in Input) (*Result, error)
}

var _ IGenerator = (*MockGenerator)(nil)

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) Generate(ctx context.Context, in Input) (*Result, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, in)
	}
	return &Result{}, nil
}
