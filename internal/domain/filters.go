package domain

// DeploymentFilter narrows the recorded deployments returned by a repository
type DeploymentFilter struct {
	ChainID      uint64
	ContractName string
	RunID        string
}
