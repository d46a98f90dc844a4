package models

// BusinessEntity is a provider record returned by a directory.
type BusinessEntity struct {
	Key         string            `json:"business_key"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Services    []BusinessService `json:"business_services,omitempty"`
}

// BusinessService is a service record. Summaries returned by find calls may
// omit BindingTemplates.
type BusinessService struct {
	Key              string            `json:"service_key"`
	BusinessKey      string            `json:"business_key,omitempty"`
	Name             string            `json:"name"`
	BindingTemplates []BindingTemplate `json:"binding_templates,omitempty"`
}

// BindingTemplate carries the technical binding of a service.
type BindingTemplate struct {
	Key         string       `json:"binding_key"`
	ServiceKey  string       `json:"service_key,omitempty"`
	Description string       `json:"description,omitempty"`
	AccessPoint *AccessPoint `json:"access_point,omitempty"`
}

// AccessPoint is the network address of a binding.
type AccessPoint struct {
	UseType string `json:"use_type"`
	Value   string `json:"value"`
}

// ServiceByName returns the first service whose name equals name exactly.
func (e BusinessEntity) ServiceByName(name string) (BusinessService, bool) {
	for _, svc := range e.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return BusinessService{}, false
}

// ServiceByKey returns the service with the given key.
func (e BusinessEntity) ServiceByKey(key string) (BusinessService, bool) {
	for _, svc := range e.Services {
		if svc.Key == key {
			return svc, true
		}
	}
	return BusinessService{}, false
}
