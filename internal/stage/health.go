package stage

// Health reports whether a stage is able to process jobs. Detail carries
// the reason when it is not.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

// Healthy marks a stage ready.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// Unhealthy marks a stage not ready and records why.
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Ready: false, Detail: detail}
}
