package product

import "time"

const placeholderImage = "https://images.unsplash.com/photo-1725507030040-43ca39002d7a?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&q=80&w=400"

var (
	sellerBudi = Seller{
		ID:       "farmer-budi",
		Name:     "Pak Budi Santoso",
		Location: "Yogyakarta",
		Photo:    "https://images.unsplash.com/photo-1602511706963-02ecf61637b3?w=100",
	}
	sellerSiti = Seller{
		ID:       "farmer-siti",
		Name:     "Ibu Siti Rahayu",
		Location: "Bandung, Jawa Barat",
		Photo:    "https://images.unsplash.com/photo-1595152772835-219674b2a8a6?w=100",
	}
	sellerAgus = Seller{
		ID:       "farmer-agus",
		Name:     "Pak Agus Wijaya",
		Location: "Malang, Jawa Timur",
		Photo:    "https://images.unsplash.com/photo-1560250097-0b93528c311a?w=100",
	}
	sellerDewi = Seller{
		ID:       "farmer-dewi",
		Name:     "Ibu Dewi Lestari",
		Location: "Surabaya, Jawa Timur",
		Photo:    "https://images.unsplash.com/photo-1573496359142-b8d87734a5a2?w=100",
	}
)

// SeedProducts returns a fresh copy of the demo catalog.
func SeedProducts() []*Product {
	base := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)

	products := []*Product{
		{
			ID: "1", Name: "Jahe Merah Organik", Price: 35000, Category: CategoryImmunity, Seller: sellerBudi,
			Description: "Jahe merah pilihan dari kebun organik lereng Merapi.",
			Benefits:    []string{"Meningkatkan daya tahan tubuh", "Menghangatkan badan", "Meredakan masuk angin"},
			Usage:       "Seduh 1 sendok teh dengan air panas, minum 2 kali sehari.",
			Rating:      4.8, Reviews: 124, Stock: 50,
		},
		{
			ID: "2", Name: "Kunyit Bubuk Murni", Price: 15000, Category: CategoryDigestion, Seller: sellerSiti,
			Description: "Kunyit dikeringkan alami lalu digiling halus tanpa campuran.",
			Benefits:    []string{"Melancarkan pencernaan", "Antioksidan alami"},
			Usage:       "Campur 1/2 sendok teh ke dalam air hangat atau masakan.",
			Rating:      4.6, Reviews: 89, Stock: 120,
		},
		{
			ID: "3", Name: "Temulawak Segar", Price: 25000, Category: CategoryEnergy, Seller: sellerAgus,
			Description: "Rimpang temulawak segar dipanen setiap minggu.",
			Benefits:    []string{"Menambah stamina", "Menjaga kesehatan hati"},
			Usage:       "Parut, rebus dengan 2 gelas air hingga tersisa 1 gelas.",
			Rating:      4.7, Reviews: 63, Stock: 30,
		},
		{
			ID: "4", Name: "Lidah Buaya Organik", Price: 20000, Category: CategoryBeauty, Seller: sellerDewi,
			Description: "Daun lidah buaya tebal untuk perawatan kulit dan rambut.",
			Benefits:    []string{"Melembapkan kulit", "Menyuburkan rambut"},
			Usage:       "Oleskan gel lidah buaya pada kulit atau kulit kepala.",
			Rating:      4.5, Reviews: 41, Stock: 40,
		},
		{
			ID: "5", Name: "Teh Serai Wangi", Price: 30000, Category: CategoryRelaxation, Seller: sellerBudi,
			Description: "Serai kering beraroma segar untuk teh penenang.",
			Benefits:    []string{"Membantu relaksasi", "Meningkatkan kualitas tidur"},
			Usage:       "Seduh 1 kantong dengan air panas selama 5 menit.",
			Rating:      4.9, Reviews: 152, Stock: 75,
		},
		{
			ID: "6", Name: "Daun Mint Kering", Price: 18000, Category: CategoryRespiratory, Seller: sellerSiti,
			Description: "Daun mint dikeringkan dengan suhu rendah agar aroma terjaga.",
			Benefits:    []string{"Melegakan pernapasan", "Menyegarkan napas"},
			Usage:       "Seduh atau hirup uapnya saat hidung tersumbat.",
			Rating:      4.4, Reviews: 37, Stock: 60,
		},
		{
			ID: "7", Name: "Kencur Pilihan", Price: 22000, Category: CategoryPainRelief, Seller: sellerAgus,
			Description: "Kencur segar untuk beras kencur dan param tradisional.",
			Benefits:    []string{"Meredakan pegal linu", "Mengurangi peradangan"},
			Usage:       "Tumbuk halus, campur dengan beras sebagai param.",
			Rating:      4.6, Reviews: 58, Stock: 45,
		},
		{
			ID: "8", Name: "Daun Sambiloto", Price: 28000, Category: CategoryDiabetes, Seller: sellerDewi,
			Description: "Daun sambiloto kering untuk jamu pahit tradisional.",
			Benefits:    []string{"Membantu menjaga gula darah"},
			Usage:       "Rebus 5 lembar daun dengan 2 gelas air.",
			Rating:      4.3, Reviews: 29, Stock: 25,
		},
	}

	for i, p := range products {
		p.Image = placeholderImage
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
	}

	return products
}
