package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

// AddGameObject adds g and any descendants that are not yet in the scene.
func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	if _, exists := s.uidMap[g.UID]; !exists {
		s.GameObjects = append(s.GameObjects, g)
		s.uidMap[g.UID] = g
		g.Scene = s
	}
	for _, child := range g.Children {
		s.AddGameObject(child)
	}
}

// RemoveGameObject removes g and all of its descendants.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for _, child := range g.Children {
		s.RemoveGameObject(child)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	delete(s.uidMap, g.UID)
	if g.Scene == s {
		g.Scene = nil
	}
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// Roots returns the objects without a parent, in insertion order.
func (s *Scene) Roots() []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.Parent == nil {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	// Components may destroy objects mid-update
	objects := append([]*GameObject(nil), s.GameObjects...)
	for _, g := range objects {
		if g.Scene != s {
			continue
		}
		g.Update(deltaTime)
	}
}
