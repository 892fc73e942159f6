package paymentstore_test

import (
	"testing"

	paymentstore "github.com/vijayakumarjith/startupsp/internal/app/store/payments"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
	"github.com/vijayakumarjith/startupsp/internal/testutil"
)

func TestStore_HasPaid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Append(ctx, models.Payment{Email: "Lead@Test.com", Status: models.PaymentPaid, Reference: "r1"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Lookup is case-insensitive via lowercased storage.
	paid, err := store.HasPaid(ctx, "lead@test.com")
	if err != nil {
		t.Fatalf("HasPaid failed: %v", err)
	}
	if !paid {
		t.Error("HasPaid: got false, want true")
	}

	paid, err = store.HasPaid(ctx, "other@test.com")
	if err != nil {
		t.Fatalf("HasPaid failed: %v", err)
	}
	if paid {
		t.Error("HasPaid for unknown email: got true, want false")
	}
}

func TestStore_PendingRecordIsNotPaid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Append(ctx, models.Payment{Email: "p@test.com", Status: models.PaymentPending, Reference: "r2"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	paid, err := store.HasPaid(ctx, "p@test.com")
	if err != nil {
		t.Fatalf("HasPaid failed: %v", err)
	}
	if paid {
		t.Error("a pending record must not count as paid")
	}
}

func TestStore_ListByEmail_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, ref := range []string{"a", "b", "c"} {
		if err := store.Append(ctx, models.Payment{Email: "x@test.com", Status: models.PaymentPending, Reference: ref}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := store.ListByEmail(ctx, "x@test.com")
	if err != nil {
		t.Fatalf("ListByEmail failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByEmail: got %d records, want 3", len(got))
	}
}
