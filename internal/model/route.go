package model

// TrafficAlert flags an incident hotspot near the planned path.
type TrafficAlert struct {
	Type     string          `json:"type"`
	Severity Severity        `json:"severity"`
	Hotspot  IncidentHotspot `json:"location"`
	Message  string          `json:"message"`
}

// RouteResult is one planned path with its time estimate and any
// triggered hotspot alerts.
type RouteResult struct {
	Waypoints  []Coordinate   `json:"route_points"`
	ETAMinutes float64        `json:"estimated_time_minutes"`
	Alerts     []TrafficAlert `json:"traffic_alerts"`
}

// AlternativeRoute is a non-optimal fallback path offered for choice.
type AlternativeRoute struct {
	Waypoints   []Coordinate `json:"route_points"`
	ETAMinutes  float64      `json:"estimated_time_minutes"`
	Description string       `json:"description"`
}
