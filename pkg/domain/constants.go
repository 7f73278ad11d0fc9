package domain

// Document keys of the persisted service descriptor.
const (
	KeyDescription = "description"
	KeyFields      = "fields"
	KeyExample     = "example"
	KeyName        = "name"
)

// FieldEntityID is the field every speaker action uses to address its target entity.
const FieldEntityID = "entity_id"

// EntityDomain is the platform domain owning KEF speaker entities.
const EntityDomain = "media_player"
