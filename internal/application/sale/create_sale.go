package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/farmapunto/pos-api/internal/application/dto"
	"github.com/farmapunto/pos-api/internal/domain"
	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/money"
	"github.com/farmapunto/pos-api/internal/domain/promo"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

// cacheTTL del catálogo en la ruta de cobro.
const cacheTTL = 5 * time.Minute

// CrearVentaUseCase es el orquestador del motor de ventas: resuelve precios bajo
// el catálogo de promociones, concilia el pago en centavos exactos y comete la
// venta como unidad atómica (venta + decremento de inventario + monedero +
// cierre de ticket). Todo o nada: cualquier falla revierte la unidad completa.
type CrearVentaUseCase struct {
	txRunner       VentaTxRunner
	productoRepo   repository.ProductoRepository
	inventarioRepo repository.InventarioRepository
	clienteRepo    repository.ClienteRepository
	farmaciaRepo   repository.FarmaciaRepository
	ventaRepo      repository.VentaRepository
	cache          ProductoCache
}

// NewCrearVentaUseCase construye el caso de uso. cache puede ser nil (sin cache).
func NewCrearVentaUseCase(
	txRunner VentaTxRunner,
	productoRepo repository.ProductoRepository,
	inventarioRepo repository.InventarioRepository,
	clienteRepo repository.ClienteRepository,
	farmaciaRepo repository.FarmaciaRepository,
	ventaRepo repository.VentaRepository,
	cache ProductoCache,
) *CrearVentaUseCase {
	return &CrearVentaUseCase{
		txRunner:       txRunner,
		productoRepo:   productoRepo,
		inventarioRepo: inventarioRepo,
		clienteRepo:    clienteRepo,
		farmaciaRepo:   farmaciaRepo,
		ventaRepo:      ventaRepo,
		cache:          cache,
	}
}

// lineaAgregada acumula las líneas del carrito por producto, en orden de envío.
// Las unidades gratis llegan como línea aparte con precio cero.
type lineaAgregada struct {
	productoID string
	cantidad   int
	gratis     int // unidades declaradas gratis por el cliente
}

// CrearVenta ejecuta la venta completa. Las validaciones y el cálculo de precios
// corren antes de abrir la transacción; rechazar en esa fase no deja efecto
// alguno. La fase de commit es una saga ordenada dentro de una sola transacción:
// ticket → decrementos condicionales → venta y detalles → cierre de ticket →
// monedero.
func (uc *CrearVentaUseCase) CrearVenta(ctx context.Context, cajeroID string, in dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	if in.FarmaciaID == "" || cajeroID == "" || len(in.Lineas) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lineas {
		if l.ProductoID == "" || l.Cantidad <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	farmacia, err := uc.farmaciaRepo.GetByID(in.FarmaciaID)
	if err != nil {
		return nil, err
	}
	if farmacia == nil {
		return nil, domain.ErrNotFound
	}
	// La vigencia de promociones se evalúa con el día calendario local de la sucursal.
	ahora := time.Now()
	hoy := ahora.In(farmacia.Ubicacion())

	var cliente *entity.Cliente
	if in.ClienteID != "" {
		cliente, err = uc.clienteRepo.GetByID(in.ClienteID)
		if err != nil {
			return nil, err
		}
		if cliente == nil {
			return nil, domain.ErrNotFound
		}
	}
	flags := promo.Flags{
		ClienteRegistrado: cliente != nil,
		ClienteINAPAM:     in.DescuentoINAPAM && cliente != nil && cliente.INAPAM,
	}

	agregadas := agruparLineas(in.Lineas)
	ids := make([]string, len(agregadas))
	for i, a := range agregadas {
		ids[i] = a.productoID
	}

	productos, err := uc.cargarProductos(ctx, ids)
	if err != nil {
		return nil, err
	}
	inventario, err := uc.inventarioRepo.GetLote(in.FarmaciaID, ids)
	if err != nil {
		return nil, err
	}

	// Fase de precios: pura, sin escrituras.
	venta := &entity.Venta{
		ID:         uuid.New().String(),
		FarmaciaID: in.FarmaciaID,
		CajeroID:   cajeroID,
		Fecha:      ahora,
	}
	if cliente != nil {
		venta.ClienteID = &cliente.ID
	}
	if in.TicketID != "" {
		venta.TicketID = &in.TicketID
	}

	var detalles []*entity.DetalleVenta
	for _, a := range agregadas {
		producto, ok := productos[a.productoID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductoNoEncontrado, a.productoID)
		}
		inv, ok := inventario[a.productoID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductoNoEncontrado, producto.Nombre)
		}
		if inv.Existencia < a.cantidad {
			return nil, fmt.Errorf("%w: %s (existencia %d, solicitado %d)",
				domain.ErrStockInsuficiente, producto.Nombre, inv.Existencia, a.cantidad)
		}

		fl := flags
		fl.AplicaINAPAM = producto.AplicaINAPAM

		asig := promo.AsignarCantidad(producto.Promos.Cantidad, hoy, a.cantidad)
		if err := asig.ValidarDeclaradas(a.gratis); err != nil {
			return nil, fmt.Errorf("%s: %w", producto.Nombre, err)
		}

		if asig.Activa {
			if asig.Pagadas > 0 {
				dec := promo.ResolverPagadasCantidad(asig, inv.Precio, fl)
				detalles = append(detalles, nuevoDetalle(venta.ID, producto, dec, asig.Pagadas))
			}
			if asig.Gratis > 0 {
				dec := promo.ResolverGratisCantidad(asig, inv.Precio)
				detalles = append(detalles, nuevoDetalle(venta.ID, producto, dec, asig.Gratis))
			}
		} else {
			dec := promo.Resolver(producto.Promos, inv.Precio, producto.Categoria, hoy, fl)
			detalles = append(detalles, nuevoDetalle(venta.ID, producto, dec, a.cantidad))
		}
	}

	for _, d := range detalles {
		venta.Total += d.Importe
		venta.Descuento += d.Descuento
		venta.AbonoMonedero += d.AbonoMonedero
	}

	// Conciliación de pago: siempre antes de abrir la transacción.
	pago, err := money.ConciliarPago(in.Efectivo, in.Tarjeta, in.Transferencia, in.Monedero, venta.Total)
	if err != nil {
		return nil, err
	}
	venta.Efectivo = pago.Efectivo
	venta.Tarjeta = pago.Tarjeta
	venta.Transferencia = pago.Transferencia
	venta.Monedero = pago.Monedero

	// Pre-chequeo de monedero con el saldo leído; se revalida dentro de la
	// transacción con el renglón bloqueado.
	if pago.Monedero > 0 {
		if cliente == nil {
			return nil, domain.ErrSinMonedero
		}
		if cliente.SaldoMonedero < pago.Monedero {
			return nil, fmt.Errorf("%w: saldo %s, cargo %s",
				domain.ErrMonederoInsuficiente, cliente.SaldoMonedero, pago.Monedero)
		}
	}

	err = uc.txRunner.RunVenta(ctx, func(
		invRepo repository.InventarioRepository,
		ventaRepo repository.VentaRepository,
		clienteRepo repository.ClienteRepository,
		ticketRepo repository.TicketRepository,
	) error {
		// 1) Ticket de consulta: recargar con bloqueo y validar precondiciones.
		if in.TicketID != "" {
			if err := validarTicket(ticketRepo, in.TicketID, cajeroID); err != nil {
				return err
			}
		}

		// 2) Decrementos condicionales, en el orden de envío. Menos renglones
		// modificados que decrementos emitidos = carrera perdida: abortar todo.
		for _, a := range agregadas {
			modificado, err := invRepo.DescontarExistencia(in.FarmaciaID, a.productoID, a.cantidad)
			if err != nil {
				return err
			}
			if !modificado {
				return fmt.Errorf("%w: %s", domain.ErrSobreventaConcurrente, productos[a.productoID].Nombre)
			}
		}

		// 3) Venta y detalles.
		if err := ventaRepo.Create(venta); err != nil {
			return err
		}
		for _, d := range detalles {
			if err := ventaRepo.CreateDetalle(d); err != nil {
				return err
			}
		}

		// 4) Cierre del ticket ligando la venta.
		if in.TicketID != "" {
			if err := ticketRepo.MarcarAtendido(in.TicketID, venta.ID); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrCierreTicketFallido, err)
			}
		}

		// 5) Monedero: una entrada de ledger y saldo = saldo + abono - cargo.
		if cliente != nil && (venta.AbonoMonedero > 0 || pago.Monedero > 0) {
			c, err := clienteRepo.GetForUpdate(cliente.ID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.ErrNotFound
			}
			// Revalidación con el renglón bloqueado: otra venta del mismo
			// cliente pudo gastar el saldo después del pre-chequeo.
			if c.SaldoMonedero < pago.Monedero {
				return fmt.Errorf("%w: saldo %s, cargo %s",
					domain.ErrMonederoInsuficiente, c.SaldoMonedero, pago.Monedero)
			}
			mov := &entity.MovimientoMonedero{
				ID:         uuid.New().String(),
				ClienteID:  c.ID,
				FarmaciaID: in.FarmaciaID,
				Abono:      venta.AbonoMonedero,
				Cargo:      pago.Monedero,
				Motivo:     "Venta " + venta.ID,
				Fecha:      ahora,
			}
			if err := clienteRepo.CrearMovimiento(mov); err != nil {
				return err
			}
			nuevoSaldo := c.SaldoMonedero + venta.AbonoMonedero - pago.Monedero
			if err := clienteRepo.ActualizarSaldo(c.ID, nuevoSaldo); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toVentaResponse(venta, detalles), nil
}

// GetVenta obtiene una venta cobrada con su detalle completo.
func (uc *CrearVentaUseCase) GetVenta(ctx context.Context, id string) (*dto.VentaResponse, error) {
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.ErrNotFound
	}
	detalles, err := uc.ventaRepo.GetDetalles(id)
	if err != nil {
		return nil, err
	}
	return toVentaResponse(venta, detalles), nil
}

// validarTicket aplica las precondiciones del cierre por cobro, cada violación
// con su error propio para que el cliente las distinga.
func validarTicket(ticketRepo repository.TicketRepository, ticketID, cajeroID string) error {
	t, err := ticketRepo.GetForUpdate(ticketID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrTicketNoEncontrado
	}
	if t.VentaID != nil {
		return domain.ErrTicketYaCobrado
	}
	if t.Estado != entity.TicketPorPagar {
		return domain.ErrTicketNoPorPagar
	}
	if t.CajeroID != nil && *t.CajeroID != cajeroID {
		return domain.ErrTicketDeOtroCajero
	}
	return nil
}

// agruparLineas acumula las líneas por producto preservando el orden de envío.
// Una línea con precio unitario cero declara unidades gratis de la promoción de
// cantidad.
func agruparLineas(lineas []dto.LineaVentaRequest) []*lineaAgregada {
	porProducto := make(map[string]*lineaAgregada)
	var orden []*lineaAgregada
	for _, l := range lineas {
		a, ok := porProducto[l.ProductoID]
		if !ok {
			a = &lineaAgregada{productoID: l.ProductoID}
			porProducto[l.ProductoID] = a
			orden = append(orden, a)
		}
		a.cantidad += l.Cantidad
		if l.PrecioUnitario.IsZero() {
			a.gratis += l.Cantidad
		}
	}
	return orden
}

// cargarProductos lee el catálogo pasando por el cache; los misses van al
// repositorio en un solo lote. Errores de cache se ignoran: el catálogo manda.
func (uc *CrearVentaUseCase) cargarProductos(ctx context.Context, ids []string) (map[string]*entity.Producto, error) {
	productos := make(map[string]*entity.Producto, len(ids))
	var faltantes []string
	for _, id := range ids {
		if uc.cache != nil {
			if p, ok, err := uc.cache.Get(ctx, id); err == nil && ok {
				productos[id] = p
				continue
			}
		}
		faltantes = append(faltantes, id)
	}
	if len(faltantes) == 0 {
		return productos, nil
	}
	leidos, err := uc.productoRepo.GetLote(faltantes)
	if err != nil {
		return nil, err
	}
	for id, p := range leidos {
		productos[id] = p
		if uc.cache != nil {
			_ = uc.cache.Set(ctx, id, p, cacheTTL)
		}
	}
	return productos, nil
}

// porCantidad multiplica un monto unitario por la cantidad de la línea.
func porCantidad(unitario money.Cents, cantidad int) money.Cents {
	return unitario * money.Cents(cantidad)
}

func nuevoDetalle(ventaID string, p *entity.Producto, dec promo.Decision, cantidad int) *entity.DetalleVenta {
	return &entity.DetalleVenta{
		ID:             uuid.New().String(),
		VentaID:        ventaID,
		ProductoID:     p.ID,
		Nombre:         p.Nombre,
		Categoria:      p.Categoria,
		Cantidad:       cantidad,
		PrecioUnitario: dec.PrecioUnitario,
		Importe:        porCantidad(dec.PrecioUnitario, cantidad),
		Descuento:      porCantidad(dec.DescuentoUnitario, cantidad),
		AbonoMonedero:  porCantidad(dec.AbonoUnitario(), cantidad),
		PrecioOriginal: dec.PrecioOriginal,
		Costo:          p.Costo,
		Promocion:      dec.Etiqueta,
		Anotacion:      dec.Anotacion,
	}
}

func toVentaResponse(v *entity.Venta, detalles []*entity.DetalleVenta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:            v.ID,
		FarmaciaID:    v.FarmaciaID,
		CajeroID:      v.CajeroID,
		Fecha:         v.Fecha,
		Efectivo:      v.Efectivo.Decimal(),
		Tarjeta:       v.Tarjeta.Decimal(),
		Transferencia: v.Transferencia.Decimal(),
		Monedero:      v.Monedero.Decimal(),
		Total:         v.Total.Decimal(),
		Descuento:     v.Descuento.Decimal(),
		AbonoMonedero: v.AbonoMonedero.Decimal(),
		Detalles:      make([]dto.DetalleVentaResponse, 0, len(detalles)),
	}
	if v.ClienteID != nil {
		resp.ClienteID = *v.ClienteID
	}
	if v.TicketID != nil {
		resp.TicketID = *v.TicketID
	}
	for _, d := range detalles {
		resp.Detalles = append(resp.Detalles, dto.DetalleVentaResponse{
			ProductoID:     d.ProductoID,
			Nombre:         d.Nombre,
			Categoria:      d.Categoria,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario.Decimal(),
			Importe:        d.Importe.Decimal(),
			Descuento:      d.Descuento.Decimal(),
			AbonoMonedero:  d.AbonoMonedero.Decimal(),
			PrecioOriginal: d.PrecioOriginal.Decimal(),
			Promocion:      d.Promocion,
			Anotacion:      d.Anotacion,
		})
	}
	return resp
}
