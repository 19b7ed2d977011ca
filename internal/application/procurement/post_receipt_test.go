package procurement_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrostock/agrostock-api/internal/application/procurement"
	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: una orden APROBADA con líneas contra insumos sembrados, todo
// en el store en memoria. Los IDs son fijos para poder afirmar sobre ellos.
// ──────────────────────────────────────────────────────────────────────────────

const (
	supplierID = "sup-1"
	userID     = "user-1"
	orderID    = "po-1"
)

type testEnv struct {
	store    *memStore
	txRunner *fakeTxRunner
	postUC   *procurement.PostReceiptUseCase
	trackUC  *procurement.TrackingUseCase
	orderUC  *procurement.PurchaseOrderUseCase
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	store.suppliers[supplierID] = entity.Supplier{ID: supplierID, Name: "Agroinsumos del Valle"}
	store.users[userID] = entity.User{ID: userID, Name: "María Bodega", Role: entity.RoleBodeguero}

	txRunner := &fakeTxRunner{store: store}
	orderRepo := &fakeOrderRepo{store}
	receiptRepo := &fakeReceiptRepo{store}
	inputRepo := &fakeInputRepo{store}
	supplierRepo := &fakeSupplierRepo{store}
	userRepo := &fakeUserRepo{store}

	return &testEnv{
		store:    store,
		txRunner: txRunner,
		postUC: procurement.NewPostReceiptUseCase(
			txRunner, orderRepo, receiptRepo, inputRepo, supplierRepo, userRepo, logger.Nop()),
		trackUC: procurement.NewTrackingUseCase(orderRepo, receiptRepo, inputRepo),
		orderUC: procurement.NewPurchaseOrderUseCase(txRunner, orderRepo, receiptRepo, inputRepo, supplierRepo),
	}
}

// seedInput siembra un insumo con stock y costo iniciales.
func (e *testEnv) seedInput(id, name, stock, avgCost string) {
	e.store.inputs[id] = entity.Input{
		ID: id, Name: name, Unit: "kg",
		Stock: dec(stock), AvgCost: dec(avgCost),
		CreatedAt: nowUTC(), UpdatedAt: nowUTC(),
	}
}

// seedOrder siembra una orden con líneas (detailID, inputID, cantidad, precio).
func (e *testEnv) seedOrder(status string, lines ...[4]string) {
	total := decimal.Zero
	for _, l := range lines {
		qty, price := dec(l[2]), dec(l[3])
		e.store.orderDetails = append(e.store.orderDetails, entity.PurchaseOrderDetail{
			ID: l[0], PurchaseOrderID: orderID, InputID: l[1],
			Quantity: qty, UnitPrice: price, Subtotal: qty.Mul(price),
		})
		total = total.Add(qty.Mul(price))
	}
	e.store.orders[orderID] = entity.PurchaseOrder{
		ID: orderID, SupplierID: supplierID, Status: status, Total: total,
		CreatedAt: nowUTC(), UpdatedAt: nowUTC(),
	}
}

func post(t *testing.T, e *testEnv, lines ...[2]string) (*procurement.PostReceiptInput, error) {
	t.Helper()
	in := procurement.PostReceiptInput{PurchaseOrderID: orderID, ReceivedByID: userID}
	for _, l := range lines {
		in.Details = append(in.Details, procurement.ReceiptLineInput{
			PurchaseOrderDetailID: l[0], Quantity: dec(l[1]),
		})
	}
	_, err := e.postUC.PostReceipt(context.Background(), in)
	return &in, err
}

// Escenario A: recepción completa en una sola entrega.
func TestPostReceipt_RecepcionCompleta(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-1", "Urea 46%", "100", "10")
	e.seedOrder(entity.StatusAprobada, [4]string{"d1", "in-1", "50", "20"})

	resp, err := e.postUC.PostReceipt(context.Background(), procurement.PostReceiptInput{
		PurchaseOrderID: orderID,
		ReceivedByID:    userID,
		Details: []procurement.ReceiptLineInput{
			{PurchaseOrderDetailID: "d1", Quantity: dec("50")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// estado de la orden
	assert.Equal(t, entity.StatusRecibida, e.store.orders[orderID].Status)

	// stock y costo promedio: 100@10 + 50@20 = 150 @ 13.33
	input := e.store.inputs["in-1"]
	assert.True(t, dec("150").Equal(input.Stock), "stock: %s", input.Stock)
	assert.True(t, dec("13.33").Equal(input.AvgCost), "costo: %s", input.AvgCost)

	// respuesta expandida
	require.NotNil(t, resp.Supplier)
	assert.Equal(t, "Agroinsumos del Valle", resp.Supplier.Name)
	require.NotNil(t, resp.ReceivedBy)
	assert.Equal(t, "María Bodega", resp.ReceivedBy.Name)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "Urea 46%", resp.Details[0].InputName)

	// vista de seguimiento
	track, err := e.trackUC.GetTracking(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, track.Items, 1)
	item := track.Items[0]
	assert.True(t, item.QuantityPending.IsZero())
	assert.True(t, item.IsFullyReceived)
	assert.True(t, dec("100").Equal(item.PercentageReceived))
	assert.Equal(t, 1, track.Summary.FullyReceivedItems)
}

// Escenario B: dos entregas parciales, 30 y luego 20.
func TestPostReceipt_EntregasParciales(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-1", "Urea 46%", "0", "0")
	e.seedOrder(entity.StatusAprobada, [4]string{"d1", "in-1", "50", "10"})

	_, err := post(t, e, [2]string{"d1", "30"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRecibidaParcial, e.store.orders[orderID].Status)

	track, err := e.trackUC.GetTracking(context.Background(), orderID)
	require.NoError(t, err)
	assert.True(t, dec("20").Equal(track.Items[0].QuantityPending))
	assert.Equal(t, 1, track.Summary.PartiallyReceivedItems)

	_, err = post(t, e, [2]string{"d1", "20"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRecibida, e.store.orders[orderID].Status)

	track, err = e.trackUC.GetTracking(context.Background(), orderID)
	require.NoError(t, err)
	assert.True(t, track.Items[0].QuantityPending.IsZero())
	assert.True(t, dec("50").Equal(e.store.inputs["in-1"].Stock))
	require.Len(t, track.Items[0].ReceiptHistory, 2)
	assert.Equal(t, "María Bodega", track.Items[0].ReceiptHistory[0].ReceivedByName)
}

// Escenario C: sobre-recepción rechazada con error descriptivo.
func TestPostReceipt_SobreRecepcion(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-1", "Urea 46%", "0", "0")
	e.seedOrder(entity.StatusAprobada, [4]string{"d1", "in-1", "50", "10"})

	_, err := post(t, e, [2]string{"d1", "60"})
	var overErr *domain.OverReceiptError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, "Urea 46%", overErr.InputName)
	assert.True(t, dec("60").Equal(overErr.Requested))
	assert.True(t, dec("50").Equal(overErr.Pending))

	// nada mutado
	assert.Empty(t, e.store.receipts)
	assert.True(t, e.store.inputs["in-1"].Stock.IsZero())
	assert.Equal(t, entity.StatusAprobada, e.store.orders[orderID].Status)
}

// La suma acumulada nunca excede lo pedido, aun cuando el remanente llega en
// varias entregas: 30 + 20 llenan la línea, el tercer intento cae.
func TestPostReceipt_AcumuladoNoExcedeLoPedido(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-1", "Urea 46%", "0", "0")
	e.seedOrder(entity.StatusAprobada, [4]string{"d1", "in-1", "50", "10"})

	_, err := post(t, e, [2]string{"d1", "30"})
	require.NoError(t, err)
	_, err = post(t, e, [2]string{"d1", "20"})
	require.NoError(t, err)

	_, err = post(t, e, [2]string{"d1", "1"})
	var overErr *domain.OverReceiptError
	require.ErrorAs(t, err, &overErr)
	assert.True(t, overErr.Pending.IsZero())

	total := decimal.Zero
	for _, rd := range e.store.receiptDetails {
		total = total.Add(rd.Quantity)
	}
	assert.True(t, dec("50").Equal(total), "lo recibido acumulado no debe exceder lo pedido")
}

// Varias líneas del mismo request contra el mismo detalle se validan por su total.
func TestPostReceipt_LineasRepetidasSeSumanParaValidar(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-1", "Urea 46%", "0", "0")
	e.seedOrder(entity.StatusAprobada, [4]string{"d1", "in-1", "50", "10"})

	_, err := post(t, e, [2]string{"d1", "30"}, [2]string{"d1", "30"})
	var overErr *domain.OverReceiptError
	require.ErrorAs(t, err, &overErr)
	assert.True(t, dec("60").Equal(overErr.Requested))
	assert.Empty(t, e.store.receipts)
}

// Escenario D: recibir contra una orden no aprobada falla sin mutar nada.
func TestPostReceipt_EstadoInvalido(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-1", "Urea 46%", "0", "0")

	for _, status := range []string{entity.StatusPendiente, entity.StatusRecibida, entity.StatusCerrada, entity.StatusCancelada} {
		t.Run(status, func(t *testing.T) {
			e.store.orderDetails = nil
			e.seedOrder(status, [4]string{"d1", "in-1", "50", "10"})

			_, err := post(t, e, [2]string{"d1", "10"})
			var stateErr *domain.InvalidStateError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, status, stateErr.Status)
			assert.Empty(t, e.store.receipts)
			assert.True(t, e.store.inputs["in-1"].Stock.IsZero())
		})
	}
}

// Validaciones de entrada: detalles vacíos, cantidad no positiva, línea ajena.
func TestPostReceipt_Validaciones(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-1", "Urea 46%", "0", "0")
	e.seedOrder(entity.StatusAprobada, [4]string{"d1", "in-1", "50", "10"})

	_, err := e.postUC.PostReceipt(context.Background(), procurement.PostReceiptInput{
		PurchaseOrderID: orderID, ReceivedByID: userID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin detalles")

	_, err = post(t, e, [2]string{"d1", "0"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = post(t, e, [2]string{"d1", "-5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = post(t, e, [2]string{"detalle-de-otra-orden", "10"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "línea que no pertenece a la orden")

	_, err = e.postUC.PostReceipt(context.Background(), procurement.PostReceiptInput{
		PurchaseOrderID: "no-existe", ReceivedByID: userID,
		Details: []procurement.ReceiptLineInput{{PurchaseOrderDetailID: "d1", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "orden inexistente")

	assert.Empty(t, e.store.receipts, "ninguna validación fallida debe dejar rastro")
}

// P3: una recepción que solo toca el insumo A deja intacto al insumo B.
func TestPostReceipt_NoTocaOtrosInsumos(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-a", "Urea 46%", "100", "10")
	e.seedInput("in-b", "Semilla maíz", "40", "7.25")
	e.seedOrder(entity.StatusAprobada,
		[4]string{"d1", "in-a", "50", "20"},
		[4]string{"d2", "in-b", "10", "5"},
	)

	_, err := post(t, e, [2]string{"d1", "50"})
	require.NoError(t, err)

	b := e.store.inputs["in-b"]
	assert.True(t, dec("40").Equal(b.Stock), "stock de B intacto")
	assert.True(t, dec("7.25").Equal(b.AvgCost), "costo de B intacto")
	assert.Equal(t, entity.StatusRecibidaParcial, e.store.orders[orderID].Status,
		"la línea de B sigue pendiente")
}

// P6: si la línea 3 de 3 falla la validación, no queda recepción, ni líneas,
// ni cambio de stock de ninguna de las 3.
func TestPostReceipt_AtomicidadAnteFalloParcial(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-a", "Urea 46%", "10", "2")
	e.seedInput("in-b", "Semilla maíz", "20", "3")
	e.seedInput("in-c", "Herbicida", "30", "4")
	e.seedOrder(entity.StatusAprobada,
		[4]string{"d1", "in-a", "50", "10"},
		[4]string{"d2", "in-b", "50", "10"},
		[4]string{"d3", "in-c", "50", "10"},
	)

	_, err := post(t, e,
		[2]string{"d1", "10"},
		[2]string{"d2", "10"},
		[2]string{"d3", "60"}, // excede lo pedido
	)
	var overErr *domain.OverReceiptError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, "Herbicida", overErr.InputName)

	assert.Empty(t, e.store.receipts, "sin cabecera de recepción")
	assert.Empty(t, e.store.receiptDetails, "sin líneas de recepción")
	assert.True(t, dec("10").Equal(e.store.inputs["in-a"].Stock))
	assert.True(t, dec("20").Equal(e.store.inputs["in-b"].Stock))
	assert.True(t, dec("30").Equal(e.store.inputs["in-c"].Stock))
	assert.Equal(t, entity.StatusAprobada, e.store.orders[orderID].Status)
}

// Un conflicto de serialización se reintenta una vez de forma transparente.
func TestPostReceipt_ReintentaTrasConflicto(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-1", "Urea 46%", "0", "0")
	e.seedOrder(entity.StatusAprobada, [4]string{"d1", "in-1", "50", "10"})
	e.txRunner.conflicts = 1

	_, err := post(t, e, [2]string{"d1", "50"})
	require.NoError(t, err, "un solo conflicto debe resolverse con el reintento")
	assert.Equal(t, entity.StatusRecibida, e.store.orders[orderID].Status)
	assert.Len(t, e.store.receipts, 1, "el reintento no debe duplicar la recepción")
}

// Conflictos persistentes terminan en domain.ErrConflict para el caller.
func TestPostReceipt_ConflictoPersistente(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-1", "Urea 46%", "0", "0")
	e.seedOrder(entity.StatusAprobada, [4]string{"d1", "in-1", "50", "10"})
	e.txRunner.conflicts = 2

	_, err := post(t, e, [2]string{"d1", "50"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, e.store.receipts)
}

// El precio usado para el costeo es el pactado en la línea, no el costo previo.
func TestPostReceipt_UsaPrecioDeLaLinea(t *testing.T) {
	e := newEnv(t)
	e.seedInput("in-1", "Urea 46%", "0", "0")
	e.seedOrder(entity.StatusAprobada, [4]string{"d1", "in-1", "50", "12.50"})

	_, err := post(t, e, [2]string{"d1", "50"})
	require.NoError(t, err)
	assert.True(t, dec("12.50").Equal(e.store.inputs["in-1"].AvgCost))
}
