package depot

import (
	"errors"
	"testing"
)

func TestComputeRealizedGains(t *testing.T) {
	records := []Record{
		{Kind: KindBuy, Date: MustParseDate("1.2.2018"), Quantity: 10, Price: 100, Factor: 1.0},
		{Kind: KindBuy, Date: MustParseDate("1.3.2018"), Quantity: 10, Price: 105, Factor: 1.0},
		{Kind: KindDistribution, Date: MustParseDate("1.6.2018"), Price: 5.10, Factor: 1.0},
		{Kind: KindSell, Date: MustParseDate("1.4.2019"), Quantity: 15, Price: 110, Factor: 1.0},
	}

	got, err := ComputeRealizedGains(2019, records)
	if err != nil {
		t.Fatal(err)
	}

	// The sale spans both lots: 10 units of the first, 5 of the second.
	if len(got.Sales) != 2 {
		t.Fatalf("len(Sales) = %d, want 2", len(got.Sales))
	}
	first := got.Sales[0]
	if first.BuyDate != MustParseDate("1.2.2018") || first.Quantity != 10 {
		t.Errorf("first match: %v units from %s", first.Quantity, first.BuyDate)
	}
	if first.PurchaseValue != 1000.00 || first.SaleValue != 1100.00 || first.Gain != 100.00 {
		t.Errorf("first match: %v/%v/%v, want 1000/1100/100", first.PurchaseValue, first.SaleValue, first.Gain)
	}
	second := got.Sales[1]
	if second.BuyDate != MustParseDate("1.3.2018") || second.Quantity != 5 {
		t.Errorf("second match: %v units from %s", second.Quantity, second.BuyDate)
	}
	if second.PurchaseValue != 525.00 || second.SaleValue != 550.00 || second.Gain != 25.00 {
		t.Errorf("second match: %v/%v/%v, want 525/550/25", second.PurchaseValue, second.SaleValue, second.Gain)
	}
	if got.Total != 125.00 {
		t.Errorf("Total = %v, want 125", got.Total)
	}
}

func TestComputeRealizedGainsTotalSpansHistory(t *testing.T) {
	// The total covers all sales ever made; the itemized rows only cover the
	// requested year.
	records := []Record{
		{Kind: KindBuy, Date: MustParseDate("1.2.2018"), Quantity: 10, Price: 100, Factor: 1.0},
		{Kind: KindSell, Date: MustParseDate("1.4.2019"), Quantity: 10, Price: 110, Factor: 1.0},
	}
	got, err := ComputeRealizedGains(2018, records)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Sales) != 0 {
		t.Errorf("len(Sales) = %d, want 0", len(got.Sales))
	}
	if got.Total != 100.00 {
		t.Errorf("Total = %v, want 100", got.Total)
	}
}

func TestComputeRealizedGainsCurrency(t *testing.T) {
	// Both legs convert with their own transaction-date factor.
	records := []Record{
		{Kind: KindBuy, Date: MustParseDate("1.2.2018"), Quantity: 10, Price: 100, Factor: 1.1},
		{Kind: KindSell, Date: MustParseDate("1.4.2018"), Quantity: 10, Price: 110, Factor: 1.3},
	}
	got, err := ComputeRealizedGains(2018, records)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Sales) != 1 {
		t.Fatalf("len(Sales) = %d, want 1", len(got.Sales))
	}
	s := got.Sales[0]
	if s.PurchaseValue != 1100.00 || s.SaleValue != 1430.00 || s.Gain != 330.00 {
		t.Errorf("match: %v/%v/%v, want 1100/1430/330", s.PurchaseValue, s.SaleValue, s.Gain)
	}
}

func TestComputeRealizedGainsCarryForward(t *testing.T) {
	records := []Record{
		{Kind: KindCarryForward, Date: MustParseDate("1.1.2020"), Quantity: 10, Price: 100, Factor: 1.0},
		{Kind: KindSell, Date: MustParseDate("1.4.2020"), Quantity: 5, Price: 120, Factor: 1.0},
	}
	got, err := ComputeRealizedGains(2020, records)
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 100.00 {
		t.Errorf("Total = %v, want 100", got.Total)
	}
}

func TestComputeRealizedGainsErrors(t *testing.T) {
	_, err := ComputeRealizedGains(2018, []Record{
		{Kind: KindBuy, Date: MustParseDate("1.2.2018"), Quantity: 10, Price: 100, Factor: 1.0},
		{Kind: KindSell, Date: MustParseDate("1.4.2018"), Quantity: 15, Price: 110, Factor: 1.0},
	})
	if !errors.Is(err, ErrOversold) {
		t.Errorf("oversell: got %v, want ErrOversold", err)
	}

	_, err = ComputeRealizedGains(2018, []Record{
		{Kind: KindBuy, Date: MustParseDate("1.3.2018"), Quantity: 10, Price: 100, Factor: 1.0},
		{Kind: KindBuy, Date: MustParseDate("1.2.2018"), Quantity: 10, Price: 100, Factor: 1.0},
	})
	if !errors.Is(err, ErrNonChronological) {
		t.Errorf("out of order: got %v, want ErrNonChronological", err)
	}
}
