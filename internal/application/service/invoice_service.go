package service

import (
	"fmt"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
	"github.com/bacdepzai/orderdesk/pkg/utils"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// The built-in PDF fonts only cover Latin-1, so every string goes through
// utils.ToASCII before it is drawn.

// InvoiceService renders the customer-facing invoice. It never prints cost
// or profit figures.
type InvoiceService struct {
	shop entity.ReceiptHeader
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(shop entity.ReceiptHeader) *InvoiceService {
	return &InvoiceService{shop: shop}
}

// PDF renders snap as an A4 invoice. Orders with blocking errors are refused.
func (s *InvoiceService) PDF(snap *OrderSnapshot) ([]byte, error) {
	if err := RequireFinalizable(snap); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Trang {current}/{total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)
	s.addHeader(m, snap.Order)
	addInvoiceTableHeader(m)
	for i, item := range snap.Order.Items {
		addInvoiceRow(m, i, item)
	}
	addInvoiceSummary(m, snap)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func (s *InvoiceService) addHeader(m core.Maroto, o *entity.Order) {
	grey := &props.Color{Red: 80, Green: 80, Blue: 80}

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(utils.ToASCII(s.shop.ShopName), props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Center}),
			),
		),
	)
	if s.shop.Address != "" || s.shop.Phone != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(utils.ToASCII(joinNonEmpty(" - ", s.shop.Address, s.shop.Phone)), props.Text{Size: 8, Align: align.Center, Color: grey}),
				),
			),
		)
	}

	orderNo := o.OrderNo
	if orderNo == "" {
		orderNo = "N/A"
	}
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(utils.ToASCII("HÓA ĐƠN BÁN HÀNG"), props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center, Top: 3}),
			),
		),
		row.New(6).Add(
			col.New(6).Add(text.New(utils.ToASCII("Đơn số: "+orderNo), props.Text{Size: 9, Color: grey})),
			col.New(6).Add(text.New(utils.ToASCII("Ngày: "+o.Date), props.Text{Size: 9, Align: align.Right, Color: grey})),
		),
		row.New(6).Add(
			col.New(12).Add(text.New(utils.ToASCII("Khách hàng: "+o.DisplayCustomer()), props.Text{Size: 9})),
		),
	)
	if o.Phone != "" || o.Address != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(4).Add(text.New(utils.ToASCII("SĐT: "+o.Phone), props.Text{Size: 9})),
				col.New(8).Add(text.New(utils.ToASCII("Địa chỉ: "+o.Address), props.Text{Size: 9})),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addInvoiceTableHeader(m core.Maroto) {
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 49, Green: 46, Blue: 129}}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
		Top:   1.5,
	}
	left := headerText
	left.Align = align.Left

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(headerCell),
			col.New(4).Add(text.New(utils.ToASCII("Tên hàng"), left)).WithStyle(headerCell),
			col.New(3).Add(text.New(utils.ToASCII("Số lượng"), headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New(utils.ToASCII("Đơn giá"), headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New(utils.ToASCII("Thành tiền"), headerText)).WithStyle(headerCell),
		),
	)
}

func addInvoiceRow(m core.Maroto, index int, item entity.OrderItem) {
	base := props.Text{Size: 8, Align: align.Center, Top: 1.5}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	mode := pricing.ModeOf(item)
	qty := LineQuantity(mode, item.Quantity, item.Unit, pricing.Area(item))
	if mode == enum.PricingModeArea {
		qty = fmt.Sprintf("%s (%sx%s x%s)", qty, utils.FormatQty(item.Width), utils.FormatQty(item.Length), utils.FormatQty(item.Quantity))
	}

	var style *props.Cell
	if index%2 == 1 {
		style = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 250}}
	}

	cols := []core.Col{
		col.New(1).Add(text.New(fmt.Sprintf("%d", index+1), base)),
		col.New(4).Add(text.New(utils.ToASCII(item.Name), left)),
		col.New(3).Add(text.New(utils.ToASCII(qty), base)),
		col.New(2).Add(text.New(utils.FormatVND(item.PriceBuy), right)),
		col.New(2).Add(text.New(utils.FormatVND(pricing.ItemTotal(item)), right)),
	}
	if style != nil {
		for i := range cols {
			cols[i] = cols[i].WithStyle(style)
		}
	}
	m.AddRows(row.New(7).Add(cols...))
}

func addInvoiceSummary(m core.Maroto, snap *OrderSnapshot) {
	o, t := snap.Order, snap.Totals
	m.AddRows(row.New(4))

	label := props.Text{Size: 9, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}
	addLine := func(l, v string) {
		m.AddRows(
			row.New(6).Add(
				col.New(8).Add(text.New(utils.ToASCII(l), label)),
				col.New(4).Add(text.New(v, value)),
			),
		)
	}

	addLine("Tạm tính:", utils.FormatVND(t.Subtotal))
	if o.DiscountPercent != 0 {
		addLine(fmt.Sprintf("Chiết khấu (%s%%):", utils.FormatQty(o.DiscountPercent)), "-"+utils.FormatVND(t.DiscountAmount))
	}
	if o.ShippingCost != 0 {
		addLine("Phí ship:", utils.FormatVND(o.ShippingCost))
	}
	if o.ShippingCollection != 0 {
		addLine("Tiền xe (thu hộ):", utils.FormatVND(o.ShippingCollection))
	}

	totalCell := &props.Cell{BackgroundColor: &props.Color{Red: 238, Green: 242, Blue: 255}}
	bold := props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right, Top: 1.5}
	m.AddRows(
		row.New(9).Add(
			col.New(8).Add(text.New(utils.ToASCII("TỔNG THANH TOÁN:"), bold)).WithStyle(totalCell),
			col.New(4).Add(text.New(utils.FormatVND(t.GrandTotal)+" VND", bold)).WithStyle(totalCell),
		),
	)

	if o.Notes != "" {
		m.AddRows(
			row.New(4),
			row.New(10).Add(
				col.New(12).Add(text.New(utils.ToASCII("Ghi chú: "+o.Notes), props.Text{Size: 8, Style: fontstyle.Italic})),
			),
		)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
