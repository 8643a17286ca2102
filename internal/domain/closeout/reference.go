package closeout

// Venue заведение (local) сети.
type Venue struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// SaleCenter кассовый терминал (centro de venta).
type SaleCenter struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	VenueCode string `json:"venueCode,omitempty"`
}

// Directory разрешает коды заведений и терминалов в отображаемые имена.
// Нулевое значение пригодно к использованию и возвращает сами коды.
type Directory struct {
	venues      map[string]string
	saleCenters map[string]string
}

func NewDirectory(venues []Venue, saleCenters []SaleCenter) Directory {
	d := Directory{
		venues:      make(map[string]string, len(venues)),
		saleCenters: make(map[string]string, len(saleCenters)),
	}
	for _, v := range venues {
		if v.Code != "" && v.Name != "" {
			d.venues[v.Code] = v.Name
		}
	}
	for _, sc := range saleCenters {
		if sc.ID != "" && sc.Name != "" {
			d.saleCenters[sc.ID] = sc.Name
		}
	}
	return d
}

func (d Directory) VenueName(code string) string {
	if name, ok := d.venues[code]; ok {
		return name
	}
	return code
}

// PosName предпочитает справочник, затем имя из записи, затем идентификатор.
func (d Directory) PosName(rec Record) string {
	if name, ok := d.saleCenters[rec.PosID]; ok {
		return name
	}
	if rec.PosName != "" {
		return rec.PosName
	}
	return rec.PosID
}
