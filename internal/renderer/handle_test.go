package renderer

import "testing"

func TestHandleReleaseDestroysOnce(t *testing.T) {
	tab := newHandleTable()
	destroyed := 0
	id := tab.alloc(func(uint64) { destroyed++ })

	h := Handle{id: id, table: tab}
	if !h.Valid() {
		t.Fatal("fresh handle should be valid")
	}

	h.Release()
	if destroyed != 1 {
		t.Fatalf("expected 1 destroy, got %d", destroyed)
	}
	if h.Valid() {
		t.Error("released handle should be invalid")
	}

	// Releasing a dead handle is a no-op.
	h.Release()
	if destroyed != 1 {
		t.Errorf("double release destroyed again: %d", destroyed)
	}
}

func TestObjectRetainsMeshAndMaterial(t *testing.T) {
	tab := newHandleTable()
	var dead []string

	meshID := tab.alloc(func(uint64) { dead = append(dead, "mesh") })
	matID := tab.alloc(func(uint64) { dead = append(dead, "material") })
	objID := tab.alloc(func(uint64) { dead = append(dead, "object") }, meshID, matID)

	// Dropping the direct mesh and material handles must not free them
	// while the object lives.
	tab.release(meshID)
	tab.release(matID)
	if len(dead) != 0 {
		t.Fatalf("resources freed while object alive: %v", dead)
	}
	if tab.refs(meshID) != 1 || tab.refs(matID) != 1 {
		t.Errorf("expected 1 remaining ref each, got mesh=%d material=%d", tab.refs(meshID), tab.refs(matID))
	}

	// Releasing the object frees everything, object first.
	tab.release(objID)
	if len(dead) != 3 {
		t.Fatalf("expected 3 destroys, got %v", dead)
	}
	if dead[0] != "object" {
		t.Errorf("object should be destroyed first, got %v", dead)
	}
}

func TestRetainedResourceSurvivesObject(t *testing.T) {
	tab := newHandleTable()
	freed := false
	meshID := tab.alloc(func(uint64) { freed = true })
	objID := tab.alloc(nil, meshID)

	// Object dies but the caller still holds the mesh handle.
	tab.release(objID)
	if freed {
		t.Fatal("mesh freed while its own handle is still held")
	}
	tab.release(meshID)
	if !freed {
		t.Fatal("mesh leaked after final release")
	}
}
