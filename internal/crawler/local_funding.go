package crawler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"grantflow/internal/domain"
	"grantflow/internal/port"
)

// stateZipRanges maps USPS state codes to their assigned ZIP ranges. Each
// crawl samples a handful of ZIPs per range rather than walking every code.
var stateZipRanges = map[string][]string{
	"AL": {"35000-36999"},
	"AK": {"99500-99999"},
	"AZ": {"85000-86599"},
	"AR": {"71600-72999", "75500-75599"},
	"CA": {"90000-96199"},
	"CO": {"80000-81699"},
	"CT": {"06000-06999"},
	"DE": {"19700-19999"},
	"FL": {"32000-34999"},
	"GA": {"30000-31999", "39800-39999"},
	"HI": {"96700-96899"},
	"ID": {"83200-83899"},
	"IL": {"60000-62999"},
	"IN": {"46000-47999"},
	"IA": {"50000-52899"},
	"KS": {"66000-67999"},
	"KY": {"40000-42799"},
	"LA": {"70000-71599"},
	"ME": {"03900-04999"},
	"MD": {"20600-21999"},
	"MA": {"01000-02799"},
	"MI": {"48000-49999"},
	"MN": {"55000-56799"},
	"MS": {"38600-39799"},
	"MO": {"63000-65899"},
	"MT": {"59000-59999"},
	"NE": {"68000-69399"},
	"NV": {"89000-89899"},
	"NH": {"03000-03899"},
	"NJ": {"07000-08999"},
	"NM": {"87000-88499"},
	"NY": {"10000-14999"},
	"NC": {"27000-28999"},
	"ND": {"58000-58899"},
	"OH": {"43000-45999"},
	"OK": {"73000-74999"},
	"OR": {"97000-97999"},
	"PA": {"15000-19699"},
	"RI": {"02800-02999"},
	"SC": {"29000-29999"},
	"SD": {"57000-57799"},
	"TN": {"37000-38599"},
	"TX": {"75000-79999", "88500-88599"},
	"UT": {"84000-84799"},
	"VT": {"05000-05999"},
	"VA": {"20100-20199", "22000-24699"},
	"WA": {"98000-99499"},
	"WV": {"24700-26899"},
	"WI": {"53000-54999"},
	"WY": {"82000-83199"},
}

// AllStates returns every state code the crawler knows ZIP ranges for,
// sorted so full crawls visit states in a stable order.
func AllStates() []string {
	states := make([]string, 0, len(stateZipRanges))
	for s := range stateZipRanges {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// LocalFunding crawls state and municipal grant programs by sampling ZIP
// codes per state. Discovered opportunities are persisted as funding
// sources; ones already known by name are counted but not rewritten.
//
// TODO: searchByZip currently synthesizes placeholder results; wire it to
// the grants.gov search API once an API key is provisioned.
type LocalFunding struct {
	funding port.FundingSourceRepository
	runner  *Runner
}

// NewLocalFunding wires a local funding crawler.
func NewLocalFunding(funding port.FundingSourceRepository) *LocalFunding {
	return &LocalFunding{funding: funding, runner: NewRunner()}
}

// Crawl samples ZIP codes for each state and persists discovered funding
// sources. perState caps how many opportunities a single state contributes.
func (c *LocalFunding) Crawl(ctx context.Context, states []string, perState int) Result {
	if len(states) == 0 {
		states = AllStates()
	}
	if perState <= 0 {
		perState = 100
	}

	log.Printf("crawler.LocalFunding: starting crawl for states: %s", strings.Join(states, ", "))
	result := c.runner.Run(ctx, states, func(ctx context.Context, state string) (int, error) {
		return c.crawlState(ctx, state, perState)
	})
	log.Printf("crawler.LocalFunding: completed crawl, found %d opportunities", result.OpportunitiesFound)
	return result
}

func (c *LocalFunding) crawlState(ctx context.Context, state string, limit int) (int, error) {
	ranges, ok := stateZipRanges[state]
	if !ok {
		return 0, fmt.Errorf("unknown state %s", state)
	}

	found := 0
	for _, zipRange := range ranges {
		parts := strings.SplitN(zipRange, "-", 2)
		start, err := strconv.Atoi(parts[0])
		if err != nil {
			return found, fmt.Errorf("bad zip range %s: %w", zipRange, err)
		}
		end, err := strconv.Atoi(parts[1])
		if err != nil {
			return found, fmt.Errorf("bad zip range %s: %w", zipRange, err)
		}

		span := end - start + 1
		sampleSize := span / 1000
		if span%1000 != 0 {
			sampleSize++
		}
		if sampleSize > 5 {
			sampleSize = 5
		}
		step := span / sampleSize

		for i := 0; i < sampleSize && found < limit; i++ {
			zip := fmt.Sprintf("%05d", start+i*step)
			n, err := c.searchByZip(ctx, zip)
			if err != nil {
				log.Printf("crawler.LocalFunding: error searching zip %s: %v", zip, err)
				continue
			}
			found += n
		}
		if found >= limit {
			break
		}
	}
	return found, nil
}

func (c *LocalFunding) searchByZip(ctx context.Context, zip string) (int, error) {
	opportunity := domain.FundingSource{
		ID:          uuid.New(),
		Name:        "Local Community Grant - " + zip,
		Address:     zip,
		AwardAmount: 50000,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := c.funding.GetByName(ctx, opportunity.Name); err == nil {
		// Already discovered on a previous run.
		return 1, nil
	} else if !errors.Is(err, domain.ErrFundingSourceNotFound) {
		return 0, err
	}

	if err := c.funding.Create(ctx, &opportunity); err != nil {
		return 0, err
	}
	return 1, nil
}
