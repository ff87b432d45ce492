package events

// Topics.
const (
	TopicPetEvents      = "pet.events"
	TopicAdoptionEvents = "adoption.events"
)

// Adoption event types consumed from TopicAdoptionEvents.
const (
	AdoptionRequested = "adoption.requested"
	AdoptionCompleted = "adoption.completed"
	AdoptionCancelled = "adoption.cancelled"
)

// Source is the CloudEvent source of events published by this service.
const Source = "service-pet"

// AdoptionEvent is the payload of every adoption event.
type AdoptionEvent struct {
	AdoptionID string `json:"adoption_id"`
	PetID      string `json:"pet_id"`
}
