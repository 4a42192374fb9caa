package catalog

import model "github.com/issac8080/aurashop/internal/model/catalog"

// Seed returns the demo catalog used when no external product feed is wired.
func Seed() []model.Product {
	return []model.Product{
		{
			ID: "P001", Name: "Aura Classic Denim Jacket", Category: "Clothing",
			Description: "Stonewashed denim jacket with a relaxed fit, ideal for layering.",
			Price: 2499, Currency: "INR", Rating: 4.4, ReviewCount: 312,
			Colors: []string{"blue", "black"}, Sizes: []string{"S", "M", "L", "XL"},
			Tags: []string{"denim", "jacket", "casual"}, InStock: true, StockCount: 42,
		},
		{
			ID: "P002", Name: "Urban Flex Chinos", Category: "Clothing",
			Description: "Stretch cotton chinos for office and casual wear.",
			Price: 1399, Currency: "INR", Rating: 4.2, ReviewCount: 188,
			Colors: []string{"beige", "navy", "olive"}, Sizes: []string{"30", "32", "34", "36"},
			Tags: []string{"chinos", "office", "casual wear"}, InStock: true, StockCount: 77,
		},
		{
			ID: "P003", Name: "Nimbus Wireless Earbuds", Category: "Electronics",
			Description: "Bluetooth 5.3 earbuds with active noise cancellation and 28h battery.",
			Price: 3999, Currency: "INR", Rating: 4.6, ReviewCount: 954,
			Colors: []string{"white", "black"}, Sizes: nil,
			Tags: []string{"audio", "earbuds", "gift", "tech"}, InStock: true, StockCount: 120,
		},
		{
			ID: "P004", Name: "Volt 20000mAh Power Bank", Category: "Electronics",
			Description: "Fast-charging power bank with dual USB-C output.",
			Price: 1899, Currency: "INR", Rating: 4.5, ReviewCount: 1321,
			Colors: []string{"black"}, Sizes: nil,
			Tags: []string{"charger", "travel", "gift", "tech"}, InStock: true, StockCount: 210,
		},
		{
			ID: "P005", Name: "Meridian Leather Belt", Category: "Accessories",
			Description: "Full-grain leather belt with brushed steel buckle.",
			Price: 899, Currency: "INR", Rating: 4.1, ReviewCount: 97,
			Colors: []string{"brown", "black"}, Sizes: []string{"32", "36", "40"},
			Tags: []string{"leather", "belt", "formal"}, InStock: true, StockCount: 64,
		},
		{
			ID: "P006", Name: "Stride Low Canvas Sneakers", Category: "Footwear",
			Description: "Lightweight black canvas sneakers for everyday wear.",
			Price: 999, Currency: "INR", Rating: 4.3, ReviewCount: 420,
			Colors: []string{"black", "white"}, Sizes: []string{"7", "8", "9", "10"},
			Tags: []string{"shoes", "sneakers", "casual"}, InStock: true, StockCount: 98,
		},
		{
			ID: "P007", Name: "Summit Trail Backpack 28L", Category: "Accessories",
			Description: "Water-resistant backpack with laptop sleeve and chest strap.",
			Price: 2199, Currency: "INR", Rating: 4.4, ReviewCount: 265,
			Colors: []string{"grey", "green"}, Sizes: nil,
			Tags: []string{"backpack", "travel", "laptop"}, InStock: true, StockCount: 55,
		},
		{
			ID: "P008", Name: "Pulse Smartwatch S2", Category: "Electronics",
			Description: "AMOLED smartwatch with SpO2, GPS, and 10-day battery life.",
			Price: 6499, Currency: "INR", Rating: 4.5, ReviewCount: 780,
			Colors: []string{"black", "silver"}, Sizes: nil,
			Tags: []string{"watch", "fitness", "gift", "tech"}, InStock: true, StockCount: 88,
		},
		{
			ID: "P009", Name: "Breeze Linen Shirt", Category: "Clothing",
			Description: "Breathable linen shirt for summer evenings and office Fridays.",
			Price: 1599, Currency: "INR", Rating: 4.0, ReviewCount: 143,
			Colors: []string{"white", "sky blue"}, Sizes: []string{"S", "M", "L"},
			Tags: []string{"shirt", "linen", "party", "office"}, InStock: true, StockCount: 36,
		},
		{
			ID: "P010", Name: "Echo Bluetooth Speaker", Category: "Electronics",
			Description: "Portable speaker with deep bass and IPX6 splash resistance.",
			Price: 2799, Currency: "INR", Rating: 4.3, ReviewCount: 511,
			Colors: []string{"black", "red"}, Sizes: nil,
			Tags: []string{"audio", "speaker", "party", "gift"}, InStock: true, StockCount: 70,
		},
		{
			ID: "P011", Name: "Terra Trek Hiking Boots", Category: "Footwear",
			Description: "Ankle-support hiking boots with deep-lug rubber outsole.",
			Price: 3499, Currency: "INR", Rating: 4.6, ReviewCount: 332,
			Colors: []string{"brown"}, Sizes: []string{"7", "8", "9", "10", "11"},
			Tags: []string{"shoes", "boots", "outdoor"}, InStock: true, StockCount: 40,
		},
		{
			ID: "P012", Name: "Aura Silk Pocket Square", Category: "Accessories",
			Description: "Hand-rolled silk pocket square in four prints.",
			Price: 499, Currency: "INR", Rating: 3.9, ReviewCount: 41,
			Colors: []string{"maroon", "navy"}, Sizes: nil,
			Tags: []string{"formal", "wedding", "gift"}, InStock: true, StockCount: 150,
		},
		{
			ID: "P013", Name: "Glide Knit Running Shoes", Category: "Footwear",
			Description: "Black knit running shoes with responsive foam midsole.",
			Price: 949, Currency: "INR", Rating: 4.2, ReviewCount: 605,
			Colors: []string{"black", "grey"}, Sizes: []string{"6", "7", "8", "9", "10"},
			Tags: []string{"shoes", "running", "sports"}, InStock: true, StockCount: 132,
		},
		{
			ID: "P014", Name: "Core Graphic Tee 3-Pack", Category: "Clothing",
			Description: "Combed cotton tees in assorted graphic prints.",
			Price: 1099, Currency: "INR", Rating: 4.1, ReviewCount: 230,
			Colors: []string{"assorted"}, Sizes: []string{"S", "M", "L", "XL"},
			Tags: []string{"tshirt", "casual", "pack"}, InStock: true, StockCount: 94,
		},
		{
			ID: "P015", Name: "Lumen Desk Lamp", Category: "Electronics",
			Description: "Dimmable LED desk lamp with wireless charging base.",
			Price: 2299, Currency: "INR", Rating: 4.4, ReviewCount: 156,
			Colors: []string{"white"}, Sizes: nil,
			Tags: []string{"home", "desk", "tech", "gift"}, InStock: false, StockCount: 0,
		},
		{
			ID: "P016", Name: "Drift Aviator Sunglasses", Category: "Accessories",
			Description: "Polarized aviators with UV400 protection.",
			Price: 1299, Currency: "INR", Rating: 4.2, ReviewCount: 208,
			Colors: []string{"gold", "gunmetal"}, Sizes: nil,
			Tags: []string{"sunglasses", "summer", "travel"}, InStock: true, StockCount: 61,
		},
	}
}
