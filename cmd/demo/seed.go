package main

import (
	"time"

	"github.com/GregMSThompson/econsim-backend/internal/models"
)

// sampleBanks is a small cross-section of the real catalog, enough to
// exercise search filters and the selection flow against Firestore.
func sampleBanks() []*models.Bank {
	now := time.Now().UTC()
	filed := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	mk := func(id, rssd, cert, name, city, state string, assets float64, charter, regulator string) *models.Bank {
		return &models.Bank{
			ID:                    id,
			RSSDID:                rssd,
			FDICCertificateNumber: cert,
			BankName:              name,
			City:                  city,
			State:                 state,
			TotalAssets:           assets,
			CharterType:           charter,
			Regulator:             regulator,
			IsActive:              true,
			LastFilingDate:        &filed,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
	}

	return []*models.Bank{
		mk("7e58ab43-5d0c-4b5e-9c25-4b0f2c9a1101", "852218", "628", "JPMorgan Chase Bank", "Columbus", "OH", 3400000000000, "National Bank", "OCC"),
		mk("0bd1f0f6-93bb-41a3-8f17-2f8f4de21102", "480228", "3510", "Bank of America", "Charlotte", "NC", 2550000000000, "National Bank", "OCC"),
		mk("3f8d2e71-08aa-4c89-a9cb-9a4d0a9f1103", "451965", "3511", "Wells Fargo Bank", "Sioux Falls", "SD", 1700000000000, "National Bank", "OCC"),
		mk("95c3c40f-62a0-4ad7-8f0a-b1f8d1bc1104", "476810", "7213", "Citibank", "Sioux Falls", "SD", 1680000000000, "National Bank", "OCC"),
		mk("c2a9e813-9a6e-43a2-9a01-7a13c4571105", "504713", "6548", "U.S. Bank", "Cincinnati", "OH", 590000000000, "National Bank", "OCC"),
		mk("1d74b0aa-4a3c-4e85-9d25-fd0320aa1106", "817824", "6384", "PNC Bank", "Wilmington", "DE", 540000000000, "National Bank", "OCC"),
		mk("6afc9d55-21b4-4f0e-84a1-2c4f8e2b1107", "2182786", "57803", "Goldman Sachs Bank USA", "New York", "NY", 520000000000, "State Member Bank", "FED"),
		mk("b8d04e2c-ef16-47c5-8e02-90b2cd4f1108", "723112", "9846", "Frost Bank", "San Antonio", "TX", 52000000000, "State Member Bank", "FED"),
		mk("e0f3b7d9-58c2-493e-b7d8-64a711081109", "197478", "18221", "First Horizon Bank", "Memphis", "TN", 82000000000, "State Nonmember Bank", "FDIC"),
		mk("42a6cdd0-7f09-4c11-bc5e-5e9d3a2c1110", "643926", "21761", "Zions Bancorporation", "Salt Lake City", "UT", 87000000000, "National Bank", "OCC"),
	}
}
