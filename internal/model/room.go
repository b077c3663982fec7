package model

type Room struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Location    string   `json:"location"`
	Features    []string `json:"features"`
	Image       string   `json:"image,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"` // nil = доступна
}

// Available возвращает true, если комната не выключена администратором
func (r *Room) Available() bool {
	return r.IsAvailable == nil || *r.IsAvailable
}

// Clone возвращает глубокую копию комнаты
func (r *Room) Clone() *Room {
	c := *r
	if r.Features != nil {
		c.Features = append([]string(nil), r.Features...)
	}
	if r.IsAvailable != nil {
		v := *r.IsAvailable
		c.IsAvailable = &v
	}
	return &c
}

// RoomPatch частичное обновление комнаты
type RoomPatch struct {
	Name        *string   `json:"name,omitempty"`
	Capacity    *int      `json:"capacity,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Features    *[]string `json:"features,omitempty"`
	Image       *string   `json:"image,omitempty"`
	IsAvailable *bool     `json:"is_available,omitempty"`
}

// Apply накладывает заданные поля на копию комнаты
func (p RoomPatch) Apply(r Room) Room {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Capacity != nil {
		r.Capacity = *p.Capacity
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Features != nil {
		r.Features = append([]string(nil), (*p.Features)...)
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.IsAvailable != nil {
		v := *p.IsAvailable
		r.IsAvailable = &v
	}
	return r
}
