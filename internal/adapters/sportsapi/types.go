package sportsapi

// XML shapes of the sports API. Only the attributes used for naming are
// decoded; the root element name varies by event type and is not checked.

type xmlEntity struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type xmlCompetitorProfile struct {
	Competitor xmlEntity   `xml:"competitor"`
	Players    []xmlEntity `xml:"players>player"`
}

type xmlPlayerProfile struct {
	Player xmlPlayer `xml:"player"`
}

type xmlPlayer struct {
	xmlEntity
	FullName string `xml:"full_name,attr"`
}

type xmlSummary struct {
	SportEvent xmlSportEvent `xml:"sport_event"`
}

type xmlSportEvent struct {
	xmlEntity
	Competitors []xmlCompetitor `xml:"competitors>competitor"`
}

type xmlCompetitor struct {
	xmlEntity
	Qualifier string `xml:"qualifier,attr"`
}
