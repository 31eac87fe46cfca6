package cache

import (
	"net/url"
	"testing"
)

func TestNewKeyCanonicalizesParamOrder(t *testing.T) {
	a := url.Values{}
	a.Set("page", "1")
	a.Set("status", "Aberto")

	b := url.Values{}
	b.Set("status", "Aberto")
	b.Set("page", "1")

	if NewKey("chamados", a) != NewKey("chamados", b) {
		t.Error("insertion order changed the key")
	}
}

func TestKeysDifferByResourceAndParams(t *testing.T) {
	p := url.Values{}
	p.Set("id", "1")

	if NewKey("cliente", p) == NewKey("chamado", p) {
		t.Error("different resources compare equal")
	}
	q := url.Values{}
	q.Set("id", "2")
	if NewKey("cliente", p) == NewKey("cliente", q) {
		t.Error("different params compare equal")
	}
}

func TestKeyString(t *testing.T) {
	if got := NewKey("users", nil).String(); got != "users" {
		t.Errorf("String = %q", got)
	}
	p := url.Values{}
	p.Set("page", "2")
	if got := NewKey("clientes", p).String(); got != "clientes?page=2" {
		t.Errorf("String = %q", got)
	}
}
