package descriptor

const (
	DEFAULT_GROUP_ID    = "org.dwcj"
	DEFAULT_ARTIFACT_ID = "dwcj-install-maven-plugin"
)

// Plugin identifies the plugin declaration carrying the installer
// configuration.
type Plugin struct {
	GroupID    string `json:"groupId,omitempty"`
	ArtifactID string `json:"artifactId,omitempty"`
}

func DefaultPlugin() Plugin {
	return Plugin{
		GroupID:    DEFAULT_GROUP_ID,
		ArtifactID: DEFAULT_ARTIFACT_ID,
	}
}

func (p Plugin) Complete() Plugin {
	if p.GroupID == "" {
		p.GroupID = DEFAULT_GROUP_ID
	}
	if p.ArtifactID == "" {
		p.ArtifactID = DEFAULT_ARTIFACT_ID
	}
	return p
}

func (p Plugin) String() string {
	return p.GroupID + ":" + p.ArtifactID
}
