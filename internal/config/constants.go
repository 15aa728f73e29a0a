package config

const (
	// DefaultReservationWindow is how long checked-out cards stay pending
	// before the reservation lapses.
	DefaultReservationWindow = "2m"

	// DefaultReconcileInterval is how often the background sweep releases
	// expired reservations.
	DefaultReconcileInterval = "1m"
)
