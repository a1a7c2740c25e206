package ecs

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/hudcompass/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for dead entity")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.slot() != old.slot() {
		t.Fatalf("expected slot reuse, got %d and %d", fresh.slot(), old.slot())
	}
	if fresh == old {
		t.Fatalf("recycled entity must differ from the dead handle")
	}
	if Has(w, fresh, kind) {
		t.Fatalf("recycled entity must not inherit components")
	}
	if _, ok := Get(w, old, kind); ok {
		t.Fatalf("dead handle must not resolve components")
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get(w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove(w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove(w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get(w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove(w, e1, h3.Kind()) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})

	t.Run("add_errors", func(t *testing.T) {
		w := NewWorld()
		kind := component.NewComponentKind[int]()
		e := CreateEntity(w)

		if err := Add(w, e, kind, nil); !errors.Is(err, component.ErrNilComponent) {
			t.Fatalf("expected ErrNilComponent, got %v", err)
		}
		if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
			t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
		}
		DestroyEntity(w, e)
		if err := Add(w, e, kind, intPtr(1)); !errors.Is(err, component.ErrEntityNotAlive) {
			t.Fatalf("expected ErrEntityNotAlive, got %v", err)
		}
	})
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})

	t.Run("destroy_while_iterating", func(t *testing.T) {
		w := NewWorld()
		kind := component.NewComponentKind[int]()
		for i := 0; i < 4; i++ {
			e := CreateEntity(w)
			if err := Add(w, e, kind, intPtr(i)); err != nil {
				t.Fatal(err)
			}
		}

		visited := 0
		ForEach(w, kind, func(e Entity, _ *int) {
			visited++
			DestroyEntity(w, e)
		})
		if visited != 4 {
			t.Fatalf("expected 4 visits, got %d", visited)
		}
		if len(Entities(w)) != 0 {
			t.Fatalf("expected empty world, got %d", len(Entities(w)))
		}
	})
}

func TestForEach2(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[string]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, stringPtr("b")); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, stringPtr("c")); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *string) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nothing",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	if _, ok := First(w, kind); ok {
		t.Fatalf("expected no entity for empty store")
	}

	a := CreateEntity(w)
	b := CreateEntity(w)
	if err := Add(w, b, kind, intPtr(2)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, a, kind, intPtr(1)); err != nil {
		t.Fatal(err)
	}

	got, ok := First(w, kind)
	if !ok || got != a {
		t.Fatalf("expected lowest slot %v, got %v ok=%v", a, got, ok)
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: EventSceneLoaded, Data: "main"})
	w.Events().Push(Event{Type: EventSceneReentered})

	events := w.Events().Drain()
	if len(events) != 2 || events[0].Type != EventSceneLoaded || events[0].Data != "main" {
		t.Fatalf("unexpected events %+v", events)
	}
	if w.Events().Len() != 0 || w.Events().Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

func TestEntityAndKindNames(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	if got := e.String(); got != "1#0" {
		t.Fatalf("expected 1#0, got %q", got)
	}
	DestroyEntity(w, e)
	if got := CreateEntity(w).String(); got != "1#1" {
		t.Fatalf("expected the recycled slot to read 1#1, got %q", got)
	}

	kind := component.NewComponentKind[component.Transform]()
	if got := kind.String(); got != "component.Transform" {
		t.Fatalf("expected component.Transform, got %q", got)
	}
	if got := (component.ComponentKind[int]{}).String(); got != "<invalid component>" {
		t.Fatalf("expected the zero kind to be named invalid, got %q", got)
	}
	if err := Add(w, e, kind, &component.Transform{}); err == nil || !strings.Contains(err.Error(), "component.Transform") {
		t.Fatalf("expected the error to name the kind, got %v", err)
	}
}
