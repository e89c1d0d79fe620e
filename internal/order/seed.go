package order

import "time"

type seedLine struct {
	productID string
	name      string
	sellerID  string
	price     int64
	qty       int
}

var (
	seedJahe      = seedLine{"1", "Jahe Merah Organik", "farmer-budi", 35000, 0}
	seedKunyit    = seedLine{"2", "Kunyit Bubuk Murni", "farmer-siti", 15000, 0}
	seedTemulawak = seedLine{"3", "Temulawak Segar", "farmer-agus", 25000, 0}
	seedLidah     = seedLine{"4", "Lidah Buaya Organik", "farmer-dewi", 20000, 0}
	seedSerai     = seedLine{"5", "Teh Serai Wangi", "farmer-budi", 30000, 0}
	seedKencur    = seedLine{"7", "Kencur Pilihan", "farmer-agus", 22000, 0}
)

func (l seedLine) times(qty int) seedLine {
	l.qty = qty
	return l
}

// SeedOrders is the fixed set of orders the farmer screens start with when
// no database is configured.
func SeedOrders() []*Order {
	base := time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)

	type seed struct {
		id       string
		status   Status
		customer string
		phone    string
		address  string
		tier     string
		shipping int64
		lines    []seedLine
	}

	seeds := []seed{
		{"ORD-001", StatusNew, "Rina Wulandari", "081234567801", "Jl. Kaliurang KM 5, Sleman", "regular", 15000,
			[]seedLine{seedJahe.times(2)}},
		{"ORD-002", StatusNew, "Andi Pratama", "081234567802", "Jl. Dago No. 12, Bandung", "regular", 15000,
			[]seedLine{seedSerai.times(1), seedKunyit.times(2)}},
		{"ORD-003", StatusAccepted, "Sari Indah", "081234567803", "Jl. Pemuda No. 8, Semarang", "regular", 15000,
			[]seedLine{seedJahe.times(1)}},
		{"ORD-004", StatusPreparing, "Dimas Saputra", "081234567804", "Jl. Ijen No. 20, Malang", "regular", 15000,
			[]seedLine{seedSerai.times(3)}},
		{"ORD-005", StatusAccepted, "Maya Kusuma", "081234567805", "Jl. Raya Darmo No. 45, Surabaya", "express", 25000,
			[]seedLine{seedTemulawak.times(2), seedJahe.times(1)}},
		{"ORD-006", StatusShipped, "Lestari Ayu", "081234567806", "Jl. Gajah Mada No. 3, Denpasar", "regular", 15000,
			[]seedLine{seedLidah.times(2)}},
		{"ORD-007", StatusCompleted, "Fajar Nugroho", "081234567807", "Jl. Solo No. 17, Klaten", "regular", 15000,
			[]seedLine{seedJahe.times(4)}},
		{"ORD-008", StatusCompleted, "Putri Anggraini", "081234567808", "Jl. Sudirman No. 9, Jakarta", "regular", 15000,
			[]seedLine{seedKencur.times(1)}},
	}

	orders := make([]*Order, 0, len(seeds))
	for i, s := range seeds {
		items := make([]Item, len(s.lines))
		var subtotal int64
		for j, l := range s.lines {
			items[j] = Item{ProductID: l.productID, Name: l.name, SellerID: l.sellerID, Price: l.price, Quantity: l.qty}
			subtotal += items[j].Subtotal()
		}
		name, qty := summarize(items)
		created := base.Add(time.Duration(i) * time.Hour)

		orders = append(orders, &Order{
			ID:              s.id,
			ProductName:     name,
			Quantity:        qty,
			Total:           subtotal + s.shipping,
			CustomerName:    s.customer,
			CustomerPhone:   s.phone,
			CustomerAddress: s.address,
			Status:          s.status,
			ShippingTier:    s.tier,
			PaymentMethod:   "cod",
			ShippingCost:    s.shipping,
			Items:           items,
			CreatedAt:       created,
			UpdatedAt:       created,
		})
	}
	return orders
}
