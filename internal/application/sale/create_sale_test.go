package sale_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmapunto/pos-api/internal/application/dto"
	"github.com/farmapunto/pos-api/internal/application/sale"
	"github.com/farmapunto/pos-api/internal/domain"
	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/money"
	"github.com/farmapunto/pos-api/internal/domain/promo"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria
//
// Implementa los puertos del orquestador sobre mapas. El runner de transacción
// toma un snapshot antes de fn y lo restaura si fn falla, igual que el rollback
// de Postgres: así los tests verifican que un rechazo no deja efecto alguno.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	productos   map[string]*entity.Producto
	inventario  map[string]*entity.Inventario // por producto (una sola farmacia en tests)
	clientes    map[string]*entity.Cliente
	tickets     map[string]*entity.TicketConsulta
	farmacias   map[string]*entity.Farmacia
	ventas      map[string]*entity.Venta
	detalles    []*entity.DetalleVenta
	movimientos []*entity.MovimientoMonedero

	fallaDecremento map[string]bool    // producto → simular carrera perdida
	saldoEnTx       *money.Cents       // si está fijado, GetForUpdate lo devuelve (saldo gastado entre pre-chequeo y tx)
}

type storeSnapshot struct {
	inventario map[string]entity.Inventario
	clientes   map[string]entity.Cliente
	tickets    map[string]entity.TicketConsulta
	ventas     map[string]entity.Venta
	nDetalles  int
	nMovs      int
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		inventario: make(map[string]entity.Inventario),
		clientes:   make(map[string]entity.Cliente),
		tickets:    make(map[string]entity.TicketConsulta),
		ventas:     make(map[string]entity.Venta),
		nDetalles:  len(s.detalles),
		nMovs:      len(s.movimientos),
	}
	for k, v := range s.inventario {
		snap.inventario[k] = *v
	}
	for k, v := range s.clientes {
		snap.clientes[k] = *v
	}
	for k, v := range s.tickets {
		snap.tickets[k] = *v
	}
	for k, v := range s.ventas {
		snap.ventas[k] = *v
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.inventario = make(map[string]*entity.Inventario)
	for k, v := range snap.inventario {
		v := v
		s.inventario[k] = &v
	}
	s.clientes = make(map[string]*entity.Cliente)
	for k, v := range snap.clientes {
		v := v
		s.clientes[k] = &v
	}
	s.tickets = make(map[string]*entity.TicketConsulta)
	for k, v := range snap.tickets {
		v := v
		s.tickets[k] = &v
	}
	s.ventas = make(map[string]*entity.Venta)
	for k, v := range snap.ventas {
		v := v
		s.ventas[k] = &v
	}
	s.detalles = s.detalles[:snap.nDetalles]
	s.movimientos = s.movimientos[:snap.nMovs]
}

type fakeTxRunner struct{ s *fakeStore }

func (r fakeTxRunner) RunVenta(_ context.Context, fn func(
	invRepo repository.InventarioRepository,
	ventaRepo repository.VentaRepository,
	clienteRepo repository.ClienteRepository,
	ticketRepo repository.TicketRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(fakeInventario{r.s}, fakeVentas{r.s}, fakeClientes{r.s}, fakeTickets{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

type fakeProductos struct{ s *fakeStore }

func (f fakeProductos) GetByID(id string) (*entity.Producto, error) { return f.s.productos[id], nil }

func (f fakeProductos) GetLote(ids []string) (map[string]*entity.Producto, error) {
	out := make(map[string]*entity.Producto)
	for _, id := range ids {
		if p, ok := f.s.productos[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f fakeProductos) List() ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range f.s.productos {
		out = append(out, p)
	}
	return out, nil
}

type fakeInventario struct{ s *fakeStore }

func (f fakeInventario) GetLote(_ string, productoIDs []string) (map[string]*entity.Inventario, error) {
	out := make(map[string]*entity.Inventario)
	for _, id := range productoIDs {
		if inv, ok := f.s.inventario[id]; ok {
			out[id] = inv
		}
	}
	return out, nil
}

func (f fakeInventario) DescontarExistencia(_, productoID string, cantidad int) (bool, error) {
	if f.s.fallaDecremento[productoID] {
		return false, nil
	}
	inv, ok := f.s.inventario[productoID]
	if !ok || inv.Existencia < cantidad {
		return false, nil
	}
	inv.Existencia -= cantidad
	return true, nil
}

type fakeClientes struct{ s *fakeStore }

func (f fakeClientes) GetByID(id string) (*entity.Cliente, error) { return f.s.clientes[id], nil }

func (f fakeClientes) GetForUpdate(id string) (*entity.Cliente, error) {
	c, ok := f.s.clientes[id]
	if !ok {
		return nil, nil
	}
	if f.s.saldoEnTx != nil {
		c.SaldoMonedero = *f.s.saldoEnTx
		f.s.saldoEnTx = nil
	}
	return c, nil
}

func (f fakeClientes) ActualizarSaldo(id string, saldo money.Cents) error {
	f.s.clientes[id].SaldoMonedero = saldo
	return nil
}

func (f fakeClientes) CrearMovimiento(mov *entity.MovimientoMonedero) error {
	f.s.movimientos = append(f.s.movimientos, mov)
	return nil
}

func (f fakeClientes) ListMovimientos(clienteID string) ([]*entity.MovimientoMonedero, error) {
	var out []*entity.MovimientoMonedero
	for _, m := range f.s.movimientos {
		if m.ClienteID == clienteID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeVentas struct{ s *fakeStore }

func (f fakeVentas) Create(venta *entity.Venta) error {
	f.s.ventas[venta.ID] = venta
	return nil
}

func (f fakeVentas) CreateDetalle(detalle *entity.DetalleVenta) error {
	f.s.detalles = append(f.s.detalles, detalle)
	return nil
}

func (f fakeVentas) GetByID(id string) (*entity.Venta, error) { return f.s.ventas[id], nil }

func (f fakeVentas) GetDetalles(ventaID string) ([]*entity.DetalleVenta, error) {
	var out []*entity.DetalleVenta
	for _, d := range f.s.detalles {
		if d.VentaID == ventaID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeTickets struct{ s *fakeStore }

func (f fakeTickets) GetForUpdate(id string) (*entity.TicketConsulta, error) {
	return f.s.tickets[id], nil
}

func (f fakeTickets) MarcarAtendido(id, ventaID string) error {
	t, ok := f.s.tickets[id]
	if !ok || t.Estado != entity.TicketPorPagar || t.VentaID != nil {
		return domain.ErrCierreTicketFallido
	}
	t.Estado = entity.TicketAtendido
	t.VentaID = &ventaID
	return nil
}

type fakeFarmacias struct{ s *fakeStore }

func (f fakeFarmacias) GetByID(id string) (*entity.Farmacia, error) { return f.s.farmacias[id], nil }

type fakeCache struct {
	items map[string]*entity.Producto
	sets  int
}

func (c *fakeCache) Get(_ context.Context, id string) (*entity.Producto, bool, error) {
	p, ok := c.items[id]
	return p, ok, nil
}

func (c *fakeCache) Set(_ context.Context, id string, p *entity.Producto, _ time.Duration) error {
	c.items[id] = p
	c.sets++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	farmaciaTest = "farm-centro"
	cajeroTest   = "caj-ana"
	clienteTest  = "cli-lupita"
)

func vigenciaAmplia() (time.Time, time.Time) {
	return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)
}

// promoHoy arma una regla de día del 20% con monedero para el día de la semana
// en que corre el test, de modo que siempre esté activa.
func promoHoy() promo.Config {
	desde, hasta := vigenciaAmplia()
	var cfg promo.Config
	cfg.Dias[time.Now().Weekday()] = promo.ReglaDia{Porcentaje: 20, Desde: desde, Hasta: hasta, Monedero: true}
	return cfg
}

func promoCantidad(n int) promo.Config {
	desde, hasta := vigenciaAmplia()
	return promo.Config{Cantidad: &promo.ReglaCantidad{N: n, Desde: desde, Hasta: hasta}}
}

func nuevoStore() *fakeStore {
	s := &fakeStore{
		productos:       make(map[string]*entity.Producto),
		inventario:      make(map[string]*entity.Inventario),
		clientes:        make(map[string]*entity.Cliente),
		tickets:         make(map[string]*entity.TicketConsulta),
		farmacias:       make(map[string]*entity.Farmacia),
		ventas:          make(map[string]*entity.Venta),
		fallaDecremento: make(map[string]bool),
	}
	s.farmacias[farmaciaTest] = &entity.Farmacia{ID: farmaciaTest, Nombre: "Centro"}
	s.clientes[clienteTest] = &entity.Cliente{ID: clienteTest, Nombre: "Lupita"}
	return s
}

func (s *fakeStore) conProducto(id string, precio money.Cents, existencia int, cfg promo.Config) *fakeStore {
	s.productos[id] = &entity.Producto{ID: id, Nombre: id, Categoria: "Medicamentos", Promos: cfg}
	s.inventario[id] = &entity.Inventario{FarmaciaID: farmaciaTest, ProductoID: id, Existencia: existencia, Precio: precio}
	return s
}

func nuevoUseCase(s *fakeStore, cache sale.ProductoCache) *sale.CrearVentaUseCase {
	return sale.NewCrearVentaUseCase(
		fakeTxRunner{s}, fakeProductos{s}, fakeInventario{s}, fakeClientes{s}, fakeFarmacias{s}, fakeVentas{s}, cache,
	)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func lineaPrecio(productoID string, cantidad int, precio string) dto.LineaVentaRequest {
	return dto.LineaVentaRequest{ProductoID: productoID, Cantidad: cantidad, PrecioUnitario: d(precio)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearVenta_PublicoGeneralSinPromos(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 10, promo.Config{})
	uc := nuevoUseCase(s, nil)

	resp, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 2, "100.00")},
		Efectivo:   d("200.00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(d("200.00")), "total esperado $200.00, fue %s", resp.Total)
	assert.True(t, resp.Descuento.IsZero())
	assert.True(t, resp.AbonoMonedero.IsZero())
	require.Len(t, resp.Detalles, 1)
	assert.Equal(t, promo.EtiquetaNinguno, resp.Detalles[0].Promocion)

	assert.Equal(t, 8, s.inventario["paracetamol"].Existencia, "deben descontarse 2 unidades")
	assert.Len(t, s.ventas, 1)
	assert.Len(t, s.detalles, 1)
	assert.Empty(t, s.movimientos, "público general no genera movimientos de monedero")
}

func TestCrearVenta_PromoDelDiaConMonedero(t *testing.T) {
	s := nuevoStore().conProducto("omeprazol", 10000, 5, promoHoy())
	uc := nuevoUseCase(s, nil)

	resp, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		ClienteID:  clienteTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("omeprazol", 1, "80.00")},
		Efectivo:   d("80.00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(d("80.00")))
	assert.True(t, resp.Descuento.Equal(d("20.00")))
	assert.True(t, resp.AbonoMonedero.Equal(d("1.60")), "abono 2% de $80.00")
	assert.Equal(t, clienteTest, resp.ClienteID)

	// El abono queda asentado en el ledger y reflejado en el saldo.
	assert.Equal(t, money.Cents(160), s.clientes[clienteTest].SaldoMonedero)
	require.Len(t, s.movimientos, 1)
	mov := s.movimientos[0]
	assert.Equal(t, money.Cents(160), mov.Abono)
	assert.Zero(t, mov.Cargo)
	assert.Equal(t, "Venta "+resp.ID, mov.Motivo)
	assert.Equal(t, farmaciaTest, mov.FarmaciaID)
}

func TestCrearVenta_DescuentoINAPAM(t *testing.T) {
	s := nuevoStore().conProducto("insulina", 10000, 5, promo.Config{})
	s.productos["insulina"].AplicaINAPAM = true
	s.clientes[clienteTest].INAPAM = true
	uc := nuevoUseCase(s, nil)

	resp, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID:      farmaciaTest,
		ClienteID:       clienteTest,
		DescuentoINAPAM: true,
		Lineas:          []dto.LineaVentaRequest{lineaPrecio("insulina", 1, "95.00")},
		Efectivo:        d("95.00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(d("95.00")))
	require.Len(t, resp.Detalles, 1)
	assert.Equal(t, "INAPAM-Cliente", resp.Detalles[0].Promocion)
}

// El descuento INAPAM es bajo petición: sin la bandera no se aplica aunque el
// cliente acredite.
func TestCrearVenta_INAPAMSoloBajoPeticion(t *testing.T) {
	s := nuevoStore().conProducto("insulina", 10000, 5, promo.Config{})
	s.productos["insulina"].AplicaINAPAM = true
	s.clientes[clienteTest].INAPAM = true
	uc := nuevoUseCase(s, nil)

	resp, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		ClienteID:  clienteTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("insulina", 1, "100.00")},
		Efectivo:   d("100.00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(d("100.00")))
	assert.Equal(t, promo.EtiquetaCliente, resp.Detalles[0].Promocion)
}

func TestCrearVenta_PagoDescuadradoNoEscribeNada(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 10, promo.Config{})
	uc := nuevoUseCase(s, nil)

	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 1, "100.00")},
		Efectivo:   d("99.98"),
	})

	require.ErrorIs(t, err, domain.ErrPagoDescuadrado)
	assert.Equal(t, 10, s.inventario["paracetamol"].Existencia)
	assert.Empty(t, s.ventas)
	assert.Empty(t, s.detalles)
}

func TestCrearVenta_ToleranciaDeUnCentavo(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 10, promo.Config{})
	uc := nuevoUseCase(s, nil)

	resp, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 1, "100.00")},
		Efectivo:   d("99.99"),
	})

	require.NoError(t, err)
	// El total persistido es el calculado, no el pagado.
	assert.True(t, resp.Total.Equal(d("100.00")))
	assert.True(t, resp.Efectivo.Equal(d("99.99")))
}

func TestCrearVenta_ProductoInexistente(t *testing.T) {
	s := nuevoStore()
	uc := nuevoUseCase(s, nil)

	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("fantasma", 1, "10.00")},
		Efectivo:   d("10.00"),
	})

	assert.ErrorIs(t, err, domain.ErrProductoNoEncontrado)
}

func TestCrearVenta_StockInsuficiente(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 3, promo.Config{})
	uc := nuevoUseCase(s, nil)

	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 5, "100.00")},
		Efectivo:   d("500.00"),
	})

	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Contains(t, err.Error(), "paracetamol")
	assert.Equal(t, 3, s.inventario["paracetamol"].Existencia)
}

func TestCrearVenta_PromoCantidad(t *testing.T) {
	s := nuevoStore().conProducto("vitaminas", 10000, 10, promoCantidad(2))
	uc := nuevoUseCase(s, nil)

	// 3 unidades bajo 2x1: 2 pagadas a precio de lista y 1 declarada gratis.
	resp, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas: []dto.LineaVentaRequest{
			lineaPrecio("vitaminas", 2, "100.00"),
			lineaPrecio("vitaminas", 1, "0"),
		},
		Efectivo: d("200.00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(d("200.00")))
	assert.True(t, resp.Descuento.Equal(d("100.00")), "la unidad gratis descuenta su precio completo")
	require.Len(t, resp.Detalles, 2)
	assert.Equal(t, "2x1", resp.Detalles[0].Promocion)
	assert.Equal(t, 2, resp.Detalles[0].Cantidad)
	assert.Equal(t, "2x1-Gratis", resp.Detalles[1].Promocion)
	assert.Equal(t, 1, resp.Detalles[1].Cantidad)
	assert.True(t, resp.Detalles[1].Importe.IsZero())

	// Las 3 unidades salen de inventario, gratis incluida.
	assert.Equal(t, 7, s.inventario["vitaminas"].Existencia)
	assert.True(t, resp.AbonoMonedero.IsZero(), "la promoción de cantidad no acumula monedero")
}

func TestCrearVenta_PromoCantidadDeclaracionNoCoincide(t *testing.T) {
	s := nuevoStore().conProducto("vitaminas", 10000, 10, promoCantidad(3))
	uc := nuevoUseCase(s, nil)

	// 7 unidades bajo 3x2 corresponden 2 gratis; declarar solo 1 tumba la venta.
	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas: []dto.LineaVentaRequest{
			lineaPrecio("vitaminas", 6, "100.00"),
			lineaPrecio("vitaminas", 1, "0"),
		},
		Efectivo: d("600.00"),
	})

	require.ErrorIs(t, err, domain.ErrPromoCantidadNoCoincide)
	assert.Equal(t, 10, s.inventario["vitaminas"].Existencia)
	assert.Empty(t, s.ventas)
}

// Declarar unidades gratis cuando la promoción no está vigente también se rechaza.
func TestCrearVenta_GratisSinPromoVigente(t *testing.T) {
	s := nuevoStore().conProducto("vitaminas", 10000, 10, promo.Config{})
	uc := nuevoUseCase(s, nil)

	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas: []dto.LineaVentaRequest{
			lineaPrecio("vitaminas", 2, "100.00"),
			lineaPrecio("vitaminas", 1, "0"),
		},
		Efectivo: d("200.00"),
	})

	assert.ErrorIs(t, err, domain.ErrPromoCantidadNoCoincide)
}

func TestCrearVenta_PagoConMonedero(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 10, promo.Config{})
	s.clientes[clienteTest].SaldoMonedero = 5000
	uc := nuevoUseCase(s, nil)

	resp, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		ClienteID:  clienteTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 2, "100.00")},
		Efectivo:   d("150.00"),
		Monedero:   d("50.00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Monedero.Equal(d("50.00")))
	// Saldo = 5000 - 5000 de cargo + 400 de abono (2% de $200.00, etiqueta Cliente).
	assert.Equal(t, money.Cents(400), s.clientes[clienteTest].SaldoMonedero)
	require.Len(t, s.movimientos, 1)
	assert.Equal(t, money.Cents(400), s.movimientos[0].Abono)
	assert.Equal(t, money.Cents(5000), s.movimientos[0].Cargo)
}

func TestCrearVenta_MonederoSinCliente(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 10, promo.Config{})
	uc := nuevoUseCase(s, nil)

	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 1, "100.00")},
		Efectivo:   d("50.00"),
		Monedero:   d("50.00"),
	})

	assert.ErrorIs(t, err, domain.ErrSinMonedero)
}

func TestCrearVenta_MonederoInsuficiente(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 10, promo.Config{})
	s.clientes[clienteTest].SaldoMonedero = 3000
	uc := nuevoUseCase(s, nil)

	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		ClienteID:  clienteTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 1, "100.00")},
		Efectivo:   d("50.00"),
		Monedero:   d("50.00"),
	})

	require.ErrorIs(t, err, domain.ErrMonederoInsuficiente)
	assert.Contains(t, err.Error(), "$30.00")
	assert.Contains(t, err.Error(), "$50.00")
}

// El saldo se revalida con el renglón bloqueado dentro de la transacción: si otra
// venta del mismo cliente gastó el monedero entre el pre-chequeo y el commit, la
// venta se revierte completa.
func TestCrearVenta_SaldoGastadoDuranteLaVenta(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 10, promo.Config{})
	s.clientes[clienteTest].SaldoMonedero = 5000
	saldoGastado := money.Cents(1000)
	s.saldoEnTx = &saldoGastado
	uc := nuevoUseCase(s, nil)

	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		ClienteID:  clienteTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 1, "100.00")},
		Efectivo:   d("50.00"),
		Monedero:   d("50.00"),
	})

	require.ErrorIs(t, err, domain.ErrMonederoInsuficiente)
	// Rollback completo: el decremento de inventario también se revierte.
	assert.Equal(t, 10, s.inventario["paracetamol"].Existencia)
	assert.Empty(t, s.ventas)
	assert.Empty(t, s.movimientos)
}

// Carrera perdida en el segundo producto: el decremento ya aplicado al primero
// debe revertirse junto con todo lo demás.
func TestCrearVenta_SobreventaConcurrenteRevierteTodo(t *testing.T) {
	s := nuevoStore().
		conProducto("paracetamol", 10000, 10, promo.Config{}).
		conProducto("omeprazol", 5000, 5, promo.Config{})
	s.fallaDecremento["omeprazol"] = true
	uc := nuevoUseCase(s, nil)

	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas: []dto.LineaVentaRequest{
			lineaPrecio("paracetamol", 2, "100.00"),
			lineaPrecio("omeprazol", 1, "50.00"),
		},
		Efectivo: d("250.00"),
	})

	require.ErrorIs(t, err, domain.ErrSobreventaConcurrente)
	assert.Contains(t, err.Error(), "omeprazol")
	assert.Equal(t, 10, s.inventario["paracetamol"].Existencia, "el primer decremento debe revertirse")
	assert.Equal(t, 5, s.inventario["omeprazol"].Existencia)
	assert.Empty(t, s.ventas)
}

func TestCrearVenta_CierraTicket(t *testing.T) {
	s := nuevoStore().conProducto("consulta", 5000, 100, promo.Config{})
	s.tickets["tic-1"] = &entity.TicketConsulta{ID: "tic-1", FarmaciaID: farmaciaTest, Estado: entity.TicketPorPagar}
	uc := nuevoUseCase(s, nil)

	resp, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		TicketID:   "tic-1",
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("consulta", 1, "50.00")},
		Efectivo:   d("50.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "tic-1", resp.TicketID)
	ticket := s.tickets["tic-1"]
	assert.Equal(t, entity.TicketAtendido, ticket.Estado)
	require.NotNil(t, ticket.VentaID)
	assert.Equal(t, resp.ID, *ticket.VentaID)
}

// El ticket tomado por el mismo cajero sí se puede cerrar.
func TestCrearVenta_TicketTomadoPorElMismoCajero(t *testing.T) {
	s := nuevoStore().conProducto("consulta", 5000, 100, promo.Config{})
	cajero := cajeroTest
	s.tickets["tic-1"] = &entity.TicketConsulta{ID: "tic-1", Estado: entity.TicketPorPagar, CajeroID: &cajero}
	uc := nuevoUseCase(s, nil)

	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		TicketID:   "tic-1",
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("consulta", 1, "50.00")},
		Efectivo:   d("50.00"),
	})

	assert.NoError(t, err)
}

func TestCrearVenta_ErroresDeTicket(t *testing.T) {
	otraVenta := "venta-previa"
	otroCajero := "caj-otro"

	casos := []struct {
		nombre   string
		ticket   *entity.TicketConsulta
		esperado error
	}{
		{"inexistente", nil, domain.ErrTicketNoEncontrado},
		{"ya cobrado", &entity.TicketConsulta{ID: "tic-1", Estado: entity.TicketAtendido, VentaID: &otraVenta}, domain.ErrTicketYaCobrado},
		{"no por pagar", &entity.TicketConsulta{ID: "tic-1", Estado: "en_consulta"}, domain.ErrTicketNoPorPagar},
		{"de otro cajero", &entity.TicketConsulta{ID: "tic-1", Estado: entity.TicketPorPagar, CajeroID: &otroCajero}, domain.ErrTicketDeOtroCajero},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			s := nuevoStore().conProducto("consulta", 5000, 100, promo.Config{})
			if c.ticket != nil {
				s.tickets[c.ticket.ID] = c.ticket
			}
			uc := nuevoUseCase(s, nil)

			_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
				FarmaciaID: farmaciaTest,
				TicketID:   "tic-1",
				Lineas:     []dto.LineaVentaRequest{lineaPrecio("consulta", 1, "50.00")},
				Efectivo:   d("50.00"),
			})

			require.ErrorIs(t, err, c.esperado)
			// El rechazo del ticket corre antes que cualquier decremento.
			assert.Equal(t, 100, s.inventario["consulta"].Existencia)
			assert.Empty(t, s.ventas)
		})
	}
}

func TestCrearVenta_EntradaInvalida(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 10, promo.Config{})
	uc := nuevoUseCase(s, nil)

	_, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{FarmaciaID: farmaciaTest})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 0, "100.00")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.CrearVenta(context.Background(), "", dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 1, "100.00")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cajero")
}

// El cache de catálogo se llena en el primer miss y sirve la segunda venta sin
// volver al repositorio.
func TestCrearVenta_CacheDeCatalogo(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 10, promo.Config{})
	cache := &fakeCache{items: make(map[string]*entity.Producto)}
	uc := nuevoUseCase(s, cache)

	venta := dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 1, "100.00")},
		Efectivo:   d("100.00"),
	}

	_, err := uc.CrearVenta(context.Background(), cajeroTest, venta)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "el miss debe poblar el cache")

	// Segunda venta: el catálogo sale del cache (el repo ya ni siquiera tiene el producto).
	delete(s.productos, "paracetamol")
	_, err = uc.CrearVenta(context.Background(), cajeroTest, venta)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "un hit no vuelve a escribir el cache")
}

func TestGetVenta(t *testing.T) {
	s := nuevoStore().conProducto("paracetamol", 10000, 10, promo.Config{})
	uc := nuevoUseCase(s, nil)

	creada, err := uc.CrearVenta(context.Background(), cajeroTest, dto.CrearVentaRequest{
		FarmaciaID: farmaciaTest,
		Lineas:     []dto.LineaVentaRequest{lineaPrecio("paracetamol", 2, "100.00")},
		Efectivo:   d("200.00"),
	})
	require.NoError(t, err)

	leida, err := uc.GetVenta(context.Background(), creada.ID)
	require.NoError(t, err)
	assert.Equal(t, creada.ID, leida.ID)
	assert.True(t, leida.Total.Equal(d("200.00")))
	require.Len(t, leida.Detalles, 1)

	_, err = uc.GetVenta(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
