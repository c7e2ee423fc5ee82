package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
)

// Root resource attributes feeding the container description.
const (
	attrProductName            = "product-name"
	attrProductVersion         = "product-version"
	attrReleaseVersion         = "release-version"
	attrManagementMajorVersion = "management-major-version"
	attrManagementMinorVersion = "management-minor-version"
	attrManagementMicroVersion = "management-micro-version"
)

const defaultProductName = "WildFly"

// ModelVersion is the three-part version of the management model exposed by
// a server.
type ModelVersion struct {
	Major int
	Minor int
	Micro int
}

func (v ModelVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
}

// ContainerDescription summarizes what is running behind a management
// endpoint: the product, its versions and how it was launched. Fields the
// server did not report stay empty except ProductName, which defaults to
// "WildFly".
type ContainerDescription struct {
	ProductName    string
	ProductVersion string
	ReleaseVersion string
	ModelVersion   ModelVersion
	LaunchType     string
}

// IsDomain reports whether the description belongs to a domain controller.
func (d ContainerDescription) IsDomain() bool {
	return strings.EqualFold(d.LaunchType, "DOMAIN")
}

// String renders the description on one line, for example
// "WildFly 27.0.0.Final (WildFly Core 19.0.1.Final) - launch-type: STANDALONE".
func (d ContainerDescription) String() string {
	var sb strings.Builder
	sb.WriteString(d.ProductName)
	if d.ProductVersion != "" {
		sb.WriteByte(' ')
		sb.WriteString(d.ProductVersion)
		if d.ReleaseVersion != "" {
			sb.WriteString(" (WildFly Core ")
			sb.WriteString(d.ReleaseVersion)
			sb.WriteByte(')')
		}
	} else if d.ReleaseVersion != "" {
		sb.WriteByte(' ')
		sb.WriteString(d.ReleaseVersion)
	}
	if d.LaunchType != "" {
		sb.WriteString(" - launch-type: ")
		sb.WriteString(d.LaunchType)
	}
	return sb.String()
}

// Describe reads the root resource and builds a ContainerDescription from
// it. Unlike the running predicates this propagates failures, since a
// caller asking for a description wants to know when there is none.
func (m *Manager) Describe(ctx context.Context) (ContainerDescription, error) {
	root, err := mgmt.ExecuteForResult(ctx, m.client, mgmt.ReadResource(nil))
	if err != nil {
		return ContainerDescription{}, err
	}
	description := ContainerDescription{ProductName: defaultProductName}
	if name := root.Get(attrProductName); name.Defined() {
		description.ProductName = name.String()
	}
	if v := root.Get(attrProductVersion); v.Defined() {
		description.ProductVersion = v.String()
	}
	if v := root.Get(attrReleaseVersion); v.Defined() {
		description.ReleaseVersion = v.String()
	}
	description.ModelVersion = ModelVersion{
		Major: root.Get(attrManagementMajorVersion).AsInt(0),
		Minor: root.Get(attrManagementMinorVersion).AsInt(0),
		Micro: root.Get(attrManagementMicroVersion).AsInt(0),
	}
	if v := root.Get(attrLaunchType); v.Defined() {
		description.LaunchType = v.String()
	}
	return description, nil
}
