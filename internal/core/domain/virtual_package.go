package domain

// VirtualPackage is a capability of the host, such as "__glibc 2.35", exposed to the solver
// as a package that is always installed.
type VirtualPackage struct {
	Name        PackageName
	Version     Version
	BuildString string
}

// String renders the package as "name=version=build".
func (v VirtualPackage) String() string {
	s := v.Name.Source() + "=" + v.Version.String()
	if v.BuildString != "" {
		s += "=" + v.BuildString
	}
	return s
}

// GenericVirtualPackage is the solver-facing shape of a virtual package.
type GenericVirtualPackage struct {
	Name        PackageName
	Version     Version
	BuildString string
}

// ToGeneric converts a detected virtual package into the form the solver consumes.
func (v VirtualPackage) ToGeneric() GenericVirtualPackage {
	build := v.BuildString
	if build == "" {
		build = "0"
	}
	return GenericVirtualPackage{
		Name:        v.Name,
		Version:     v.Version,
		BuildString: build,
	}
}

// Record returns a package record standing in for the virtual package during solving.
func (g GenericVirtualPackage) Record() PackageRecord {
	return PackageRecord{
		Name:    g.Name,
		Version: g.Version,
		Build:   g.BuildString,
	}
}
