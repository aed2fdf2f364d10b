package entities

import "testing"

func TestQuoteStatus(t *testing.T) {
	cases := []struct {
		status     QuoteStatus
		valid      bool
		frozen     bool
		approvable bool
	}{
		{QuoteStatusDraft, true, false, false},
		{QuoteStatusSent, true, false, true},
		{QuoteStatusViewed, true, false, true},
		{QuoteStatusApproved, true, true, false},
		{QuoteStatusPaid, true, true, false},
		{QuoteStatus("archived"), false, false, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			if got := tc.status.Valid(); got != tc.valid {
				t.Fatalf("Valid() = %v, want %v", got, tc.valid)
			}
			if got := tc.status.FreezesViewTracking(); got != tc.frozen {
				t.Fatalf("FreezesViewTracking() = %v, want %v", got, tc.frozen)
			}
			if got := tc.status.Approvable(); got != tc.approvable {
				t.Fatalf("Approvable() = %v, want %v", got, tc.approvable)
			}
		})
	}
}

func TestPaymentStatusFromProvider(t *testing.T) {
	cases := map[string]PaymentStatus{
		"approved":   PaymentStatusApproved,
		"authorized": PaymentStatusApproved,
		"rejected":   PaymentStatusDenied,
		"cancelled":  PaymentStatusDenied,
		"in_process": PaymentStatusPending,
		"":           PaymentStatusPending,
	}
	for in, want := range cases {
		if got := PaymentStatusFromProvider(in); got != want {
			t.Fatalf("PaymentStatusFromProvider(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestDetailerChannels(t *testing.T) {
	d := Detailer{}
	if d.HasPushToken() || d.HasEmail() {
		t.Fatalf("empty detailer should have no channels")
	}
	d = Detailer{FCMToken: "tok", Email: "a@b.com"}
	if !d.HasPushToken() || !d.HasEmail() {
		t.Fatalf("expected both channels")
	}
}
