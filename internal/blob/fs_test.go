package blob

import (
	"errors"
	"testing"
)

func TestFSStoreCreateOnly(t *testing.T) {
	store := NewFSStore(t.TempDir())

	if err := store.Create("accounts/a/stock/applied/doc1.json", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	err := store.Create("accounts/a/stock/applied/doc1.json", []byte(`{"second":true}`))
	if !errors.Is(err, ErrExists) {
		t.Fatalf("second create: got %v want ErrExists", err)
	}

	// the first body must survive the failed second create
	data, err := store.Get("accounts/a/stock/applied/doc1.json")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{}` {
		t.Fatalf("body clobbered: %s", data)
	}
}

func TestFSStoreGetNotFound(t *testing.T) {
	store := NewFSStore(t.TempDir())
	_, err := store.Get("accounts/a/stock/snapshot.json")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v want ErrNotFound", err)
	}
}

func TestFSStorePutOverwritesAndList(t *testing.T) {
	store := NewFSStore(t.TempDir())
	if err := store.Put("accounts/a/deliveries/d1.json", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	if err := store.Put("accounts/a/deliveries/d1.json", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	if err := store.Put("accounts/a/stock/snapshot.json", []byte("s")); err != nil {
		t.Fatal(err)
	}

	data, err := store.Get("accounts/a/deliveries/d1.json")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v2" {
		t.Fatalf("got %s", data)
	}

	infos, err := store.List("accounts/a/deliveries/")
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Name != "accounts/a/deliveries/d1.json" {
		t.Fatalf("list: %+v", infos)
	}
}

func TestFSStoreDeleteMissingIsNoop(t *testing.T) {
	store := NewFSStore(t.TempDir())
	if err := store.Delete("accounts/a/stock/applied/gone.json"); err != nil {
		t.Fatal(err)
	}
}
