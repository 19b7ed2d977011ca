package procurement_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/application/procurement"
	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria.
//
// memStore guarda el estado completo; fakeTxRunner clona el store, ejecuta el
// callback contra el clon y solo al éxito lo vuelca de regreso. Un fallo deja
// el store original intacto, igual que el Rollback de una transacción real, lo
// que permite verificar atomicidad de verdad en los tests.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	orders         map[string]entity.PurchaseOrder // sin Details
	orderDetails   []entity.PurchaseOrderDetail
	receipts       []entity.GoodsReceipt // sin Details
	receiptDetails []entity.GoodsReceiptDetail
	inputs         map[string]entity.Input
	suppliers      map[string]entity.Supplier
	users          map[string]entity.User
}

func newMemStore() *memStore {
	return &memStore{
		orders:    make(map[string]entity.PurchaseOrder),
		inputs:    make(map[string]entity.Input),
		suppliers: make(map[string]entity.Supplier),
		users:     make(map[string]entity.User),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.inputs {
		c.inputs[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	c.orderDetails = append(c.orderDetails, s.orderDetails...)
	c.receipts = append(c.receipts, s.receipts...)
	c.receiptDetails = append(c.receiptDetails, s.receiptDetails...)
	return c
}

func (s *memStore) replaceWith(o *memStore) {
	s.orders = o.orders
	s.orderDetails = o.orderDetails
	s.receipts = o.receipts
	s.receiptDetails = o.receiptDetails
	s.inputs = o.inputs
	s.suppliers = o.suppliers
	s.users = o.users
}

// fakeTxRunner ejecuta el callback contra un clon; commit = volcar el clon.
// conflicts simula conflictos de serialización: las primeras n ejecuciones
// fallan con domain.ErrConflict sin tocar el estado.
type fakeTxRunner struct {
	store     *memStore
	conflicts int
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	inputRepo repository.InputRepository,
) error) error {
	if r.conflicts > 0 {
		r.conflicts--
		return domain.ErrConflict
	}
	tx := r.store.clone()
	if err := fn(&fakeOrderRepo{tx}, &fakeReceiptRepo{tx}, &fakeInputRepo{tx}); err != nil {
		return err
	}
	r.store.replaceWith(tx)
	return nil
}

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) Create(order *entity.PurchaseOrder) error {
	o := *order
	o.Details = nil
	r.s.orders[order.ID] = o
	return nil
}

func (r *fakeOrderRepo) CreateDetail(detail *entity.PurchaseOrderDetail) error {
	r.s.orderDetails = append(r.s.orderDetails, *detail)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.s.orders[id]
	if !ok || o.DeletedAt != nil {
		return nil, nil
	}
	details, _ := r.GetDetails(id)
	o.Details = details
	return &o, nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.s.orders[id]
	if !ok || o.DeletedAt != nil {
		return nil, nil
	}
	return &o, nil
}

func (r *fakeOrderRepo) GetDetails(orderID string) ([]entity.PurchaseOrderDetail, error) {
	var out []entity.PurchaseOrderDetail
	for _, d := range r.s.orderDetails {
		if d.PurchaseOrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.s.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for id := range r.s.orders {
		o, _ := r.GetByID(id)
		if o != nil {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) SoftDelete(id string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := nowUTC()
	o.DeletedAt = &now
	r.s.orders[id] = o
	return nil
}

type fakeReceiptRepo struct{ s *memStore }

func (r *fakeReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	gr := *receipt
	gr.Details = nil
	r.s.receipts = append(r.s.receipts, gr)
	return nil
}

func (r *fakeReceiptRepo) CreateDetail(detail *entity.GoodsReceiptDetail) error {
	r.s.receiptDetails = append(r.s.receiptDetails, *detail)
	return nil
}

func (r *fakeReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	for _, gr := range r.s.receipts {
		if gr.ID == id && gr.DeletedAt == nil {
			out := gr
			for _, rd := range r.s.receiptDetails {
				if rd.GoodsReceiptID == id {
					out.Details = append(out.Details, rd)
				}
			}
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeReceiptRepo) ListDetailsByOrder(orderID string) ([]entity.GoodsReceiptDetail, error) {
	var out []entity.GoodsReceiptDetail
	for _, gr := range r.s.receipts {
		if gr.PurchaseOrderID != orderID || gr.DeletedAt != nil {
			continue
		}
		for _, rd := range r.s.receiptDetails {
			if rd.GoodsReceiptID == gr.ID {
				out = append(out, rd)
			}
		}
	}
	return out, nil
}

func (r *fakeReceiptRepo) ListByOrder(orderID string) ([]*entity.GoodsReceipt, error) {
	var out []*entity.GoodsReceipt
	for _, gr := range r.s.receipts {
		if gr.PurchaseOrderID == orderID && gr.DeletedAt == nil {
			full, _ := r.GetByID(gr.ID)
			out = append(out, full)
		}
	}
	return out, nil
}

func (r *fakeReceiptRepo) History(orderID string) ([]repository.ReceiptHistoryRow, error) {
	var out []repository.ReceiptHistoryRow
	for _, gr := range r.s.receipts {
		if gr.PurchaseOrderID != orderID || gr.DeletedAt != nil {
			continue
		}
		name := ""
		if u, ok := r.s.users[gr.ReceivedByID]; ok {
			name = u.Name
		}
		for _, rd := range r.s.receiptDetails {
			if rd.GoodsReceiptID == gr.ID {
				out = append(out, repository.ReceiptHistoryRow{
					ReceiptID:             gr.ID,
					PurchaseOrderDetailID: rd.PurchaseOrderDetailID,
					Quantity:              rd.Quantity,
					ReceivedAt:            gr.ReceivedAt,
					ReceivedByName:        name,
					Notes:                 rd.Notes,
				})
			}
		}
	}
	return out, nil
}

type fakeInputRepo struct{ s *memStore }

func (r *fakeInputRepo) Create(input *entity.Input) error {
	r.s.inputs[input.ID] = *input
	return nil
}

func (r *fakeInputRepo) GetByID(id string) (*entity.Input, error) {
	i, ok := r.s.inputs[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (r *fakeInputRepo) GetByName(name string) (*entity.Input, error) {
	for _, i := range r.s.inputs {
		if i.Name == name {
			out := i
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeInputRepo) GetForUpdate(id string) (*entity.Input, error) {
	return r.GetByID(id)
}

func (r *fakeInputRepo) UpdateStockAndCost(id string, stock, avgCost decimal.Decimal) error {
	i, ok := r.s.inputs[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Stock = stock
	i.AvgCost = avgCost
	r.s.inputs[id] = i
	return nil
}

func (r *fakeInputRepo) List(limit, offset int) ([]*entity.Input, error) {
	var out []*entity.Input
	for _, i := range r.s.inputs {
		c := i
		out = append(out, &c)
	}
	return out, nil
}

type fakeSupplierRepo struct{ s *memStore }

func (r *fakeSupplierRepo) Create(supplier *entity.Supplier) error {
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sp := range r.s.suppliers {
		c := sp
		out = append(out, &c)
	}
	return out, nil
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func nowUTC() time.Time { return time.Now().UTC() }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Interfaces satisfechas.
var (
	_ procurement.TxRunner                 = (*fakeTxRunner)(nil)
	_ repository.PurchaseOrderRepository   = (*fakeOrderRepo)(nil)
	_ repository.GoodsReceiptRepository    = (*fakeReceiptRepo)(nil)
	_ repository.InputRepository           = (*fakeInputRepo)(nil)
	_ repository.SupplierRepository        = (*fakeSupplierRepo)(nil)
	_ repository.UserRepository            = (*fakeUserRepo)(nil)
)
