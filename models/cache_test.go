package models

import "testing"

func TestInvitationCache(t *testing.T) {
	c := NewInvitationCache(2)
	c.Add(Invitation{ID: "a", RecipientName: "A"})
	c.Add(Invitation{ID: "a", RecipientName: "changed"})
	c.Add(Invitation{ID: "b"})
	c.Add(Invitation{ID: "c"})

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if got, ok := c.Get("a"); !ok || got.RecipientName != "A" {
		t.Errorf("Get(a) = %+v, %v", got, ok)
	}
	if _, ok := c.Get("c"); ok {
		t.Error("entry added to a full cache")
	}
}

func TestInvitationCache_Disabled(t *testing.T) {
	c := NewInvitationCache(0)
	if c != nil {
		t.Fatal("NewInvitationCache(0) should return nil")
	}
	c.Add(Invitation{ID: "a"})
	if _, ok := c.Get("a"); ok || c.Len() != 0 {
		t.Error("nil cache must not store anything")
	}
}
