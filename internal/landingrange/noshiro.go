package landingrange

// SiteNoshiroSea is the registry key for the Noshiro sea launch site.
const SiteNoshiroSea = "noshiro_sea"

// noshiroSeaVertices is the surveyed maritime safety zone off Noshiro,
// as (lat, lon) pairs ordered along the boundary.
var noshiroSeaVertices = [][2]float64{
	{40.26149300294178, 140.0094791592612},
	{40.2642602688727, 139.9932398872506},
	{40.26460197870949, 139.9909318144494},
	{40.26479085228271, 139.987341377515},
	{40.26433616899444, 139.9822728225093},
	{40.26299626432305, 139.9772825248559},
	{40.26199299246836, 139.9749085824227},
	{40.26086444600114, 139.9728365038179},
	{40.25942370332147, 139.9707401748826},
	{40.25768975453263, 139.9687716646912},
	{40.25623515050533, 139.9674723780254},
	{40.2542151641483, 139.9660514425467},
	{40.25321298436799, 139.9655135448727},
	{40.25217003129539, 139.9650383050235},
	{40.25108666779969, 139.9646461338833},
	{40.24955206871581, 139.9642513745098},
	{40.24773454477712, 139.9640056563258},
	{40.24539983694682, 139.9640511121102},
	{40.24374397618987, 139.9643229542895},
	{40.2425575973181, 139.9646499711443},
	{40.24051201896022, 139.9654720128462},
	{40.2397071808194, 139.9658925750851},
	{40.23887443488726, 139.9663943856586},
	{40.23809058315737, 139.9669364758578},
	{40.23665050758729, 139.9680927149552},
	{40.23501881430268, 139.9697393127221},
	{40.23327859167702, 139.9720099153484},
	{40.2318726711675, 139.9743989893189},
	{40.23049586884894, 139.9776040232665},
	{40.22954585557037, 139.9808509371636},
	{40.22916933193805, 139.9828861110256},
	{40.22887535311624, 139.9845918728399},
	{40.22617410359279, 140.0002466848887},
}

// NewNoshiroSea returns the evaluator for the Noshiro sea safety zone.
func NewNoshiroSea() *PolygonZone {
	zone, err := NewPolygonZone(noshiroSeaVertices)
	if err != nil {
		// The vertex table is fixed at compile time.
		panic(err)
	}
	return zone
}

// DefaultSites returns the registry of known launch sites.
func DefaultSites() Registry {
	return Registry{
		SiteNoshiroSea: NewNoshiroSea(),
	}
}
