package domain

import (
	"fmt"
	"math/big"

	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// VaultFee is the fixed uint256 parameter passed to the vault constructor.
const VaultFee = 3000

// Plan is an ordered list of contract deployments. Steps run strictly in order.
type Plan struct {
	Steps []Step
}

// Step deploys a single contract
type Step struct {
	Label    string // e.g. "token", used in output and to reference the step
	Contract string // artifact name, e.g. "Coin" or "contracts/Coin.sol:Coin"
	Args     []Arg
}

// Arg is a constructor argument, resolved just before its step is deployed.
type Arg interface {
	Resolve(prior map[string]*models.Deployment) (any, error)
	String() string
}

// LiteralArg is a constant constructor argument.
type LiteralArg struct {
	Value any
}

// Literal wraps a constant value as a constructor argument
func Literal(v any) Arg {
	return LiteralArg{Value: v}
}

func (a LiteralArg) Resolve(map[string]*models.Deployment) (any, error) {
	return a.Value, nil
}

func (a LiteralArg) String() string {
	if s, ok := a.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(a.Value)
}

// AddressOfArg resolves to the address of an earlier step's deployment.
type AddressOfArg struct {
	Label string
}

// AddressOf references the deployed address of the step with the given label
func AddressOf(label string) Arg {
	return AddressOfArg{Label: label}
}

func (a AddressOfArg) Resolve(prior map[string]*models.Deployment) (any, error) {
	dep, ok := prior[a.Label]
	if !ok || dep == nil {
		return nil, fmt.Errorf("%w: step %q has not been deployed", ErrInvalidPlan, a.Label)
	}
	if !common.IsHexAddress(dep.Address) {
		return nil, fmt.Errorf("%w: step %q has malformed address %q", ErrInvalidPlan, a.Label, dep.Address)
	}
	return common.HexToAddress(dep.Address), nil
}

func (a AddressOfArg) String() string {
	return a.Label + ".address"
}

// DefaultPlan deploys the AUDC token, then the vault bound to the token's address.
func DefaultPlan() *Plan {
	return &Plan{
		Steps: []Step{
			{
				Label:    "token",
				Contract: "Coin",
				Args:     []Arg{Literal("AUDC Token"), Literal("AUDC")},
			},
			{
				Label:    "vault",
				Contract: "VaultC",
				Args:     []Arg{AddressOf("token"), Literal(big.NewInt(VaultFee))},
			},
		},
	}
}

// Validate checks labels are unique and that references only point backwards.
func (p *Plan) Validate() error {
	if p == nil || len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidPlan)
	}

	seen := make(map[string]bool, len(p.Steps))
	for i, step := range p.Steps {
		if step.Label == "" {
			return fmt.Errorf("%w: step %d has no label", ErrInvalidPlan, i)
		}
		if step.Contract == "" {
			return fmt.Errorf("%w: step %q has no contract", ErrInvalidPlan, step.Label)
		}
		if seen[step.Label] {
			return fmt.Errorf("%w: duplicate step label %q", ErrInvalidPlan, step.Label)
		}
		for _, arg := range step.Args {
			if ref, ok := arg.(AddressOfArg); ok && !seen[ref.Label] {
				return fmt.Errorf("%w: step %q references %q before it is deployed", ErrInvalidPlan, step.Label, ref.Label)
			}
		}
		seen[step.Label] = true
	}

	return nil
}

// ResolveArgs resolves all constructor arguments of a step
func (s Step) ResolveArgs(prior map[string]*models.Deployment) ([]any, error) {
	values := make([]any, 0, len(s.Args))
	for _, arg := range s.Args {
		v, err := arg.Resolve(prior)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
