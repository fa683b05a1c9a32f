package domain

// Favorites is the set of project ids the user has starred.
// Ids that no longer match a project are treated as absent.
type Favorites []uint32

// Contains reports whether id is a favorite.
func (f Favorites) Contains(id uint32) bool {
	for _, fav := range f {
		if fav == id {
			return true
		}
	}
	return false
}

// Toggle adds id when missing and removes it otherwise.
// It returns the new set and whether id is now a favorite.
func (f Favorites) Toggle(id uint32) (Favorites, bool) {
	if f.Contains(id) {
		return f.Remove(id), false
	}
	out := make(Favorites, 0, len(f)+1)
	out = append(out, f...)
	return append(out, id), true
}

// Remove returns a copy of the set without id.
func (f Favorites) Remove(id uint32) Favorites {
	out := make(Favorites, 0, len(f))
	for _, fav := range f {
		if fav != id {
			out = append(out, fav)
		}
	}
	return out
}

// Filter returns the favorite projects in favorites order, skipping dangling ids.
func (f Favorites) Filter(projects []Project) []Project {
	out := make([]Project, 0, len(f))
	for _, id := range f {
		if i := FindProject(projects, id); i >= 0 {
			out = append(out, projects[i].Clone())
		}
	}
	return out
}
