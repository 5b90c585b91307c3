package mapping_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/casing"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/mapping"
	qb "github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/query_builder"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMapper(t *testing.T) *mapping.Mapper {
	t.Helper()
	reg := mapping.NewRegistry()
	require.NoError(t, sample.ConfigureModel(reg))
	return mapping.NewMapper(reg)
}

func TestMergeEntity(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	require.NoError(t, m.MergeEntity(q, sample.WellKnownPerson(7), mapping.MergeOptions{}))

	assert.Equal(t, "MERGE (person:SecretAgent {id:$personMatchKey.id})\n"+
		"ON MATCH SET person.title = $persontitle\n"+
		"ON MATCH SET person.name = $personname\n"+
		"ON MATCH SET person.isOperative = $personisOperative\n"+
		"ON MATCH SET person.sex = $personsex\n"+
		"ON MATCH SET person.serialNumber = $personserialNumber\n"+
		"ON MATCH SET person.spendingAuthorisation = $personspendingAuthorisation\n"+
		"ON CREATE SET person = $personOnCreate", q.Text())

	assert.Equal(t, []string{
		"personMatchKey",
		"persontitle",
		"personname",
		"personisOperative",
		"personsex",
		"personserialNumber",
		"personspendingAuthorisation",
		"personOnCreate",
	}, q.ParamNames())

	params := q.Params()
	assert.Equal(t, map[string]any{"id": int64(7)}, params["personMatchKey"])
	assert.Nil(t, params["persontitle"])
	assert.Equal(t, "Sterling Archer", params["personname"])
	assert.Equal(t, true, params["personisOperative"])
	assert.Equal(t, "Male", params["personsex"])
	assert.Equal(t, int64(123456), params["personserialNumber"])
	assert.Equal(t, 100.23, params["personspendingAuthorisation"])

	onCreate, ok := q.Param("personOnCreate")
	require.True(t, ok)
	assert.Equal(t, []string{
		"id", "dateCreated", "title", "name", "isOperative", "sex", "serialNumber", "spendingAuthorisation",
	}, onCreate.Object().Keys())
}

func TestMergeEntity_IsDeterministic(t *testing.T) {
	m := newMapper(t)

	first := qb.NewQuery()
	second := qb.NewQuery()
	require.NoError(t, m.MergeEntity(first, sample.WellKnownPerson(7), mapping.MergeOptions{}))
	require.NoError(t, m.MergeEntity(second, sample.WellKnownPerson(7), mapping.MergeOptions{}))

	assert.Equal(t, first.Text(), second.Text())
	assert.Equal(t, first.DebugText(), second.DebugText())
	assert.Equal(t, first.Params(), second.Params())
}

func TestMergeEntity_ViaRelationship(t *testing.T) {
	m := newMapper(t)
	person := sample.WellKnownPerson(7)
	rel := sample.NewHomeAddressRelationship("person", "address")
	q := qb.NewQuery()

	require.NoError(t, m.MergeEntity(q, person, mapping.MergeOptions{}))
	require.NoError(t, m.MergeEntity(q, person.HomeAddress, mapping.MergeOptionsViaRelationship(rel)))
	require.NoError(t, m.MergeRelationship(q, rel, mapping.MergeRelationshipOptions{}))

	text := q.Text()
	assert.Contains(t, text, "MERGE (person)-[:HOME_ADDRESS]->(address)\n"+
		"ON MATCH SET address.street = $addressstreet\n"+
		"ON MATCH SET address.suburb = $addresssuburb\n"+
		"ON CREATE SET address = $addressOnCreate\n")
	assert.Contains(t, text, "MERGE (person)-[personaddress:HOME_ADDRESS]->(address)\n"+
		"ON MATCH SET personaddress.dateEffective = $personaddressdateEffective\n"+
		"ON CREATE SET personaddress = $personaddressOnCreate")

	_, bound := q.Param("addressMatchKey")
	assert.False(t, bound)
	_, bound = q.Param("personaddressMatchKey")
	assert.False(t, bound)
}

func TestMergeEntity_ViaRelationshipWithLabel(t *testing.T) {
	m := newMapper(t)
	rel := sample.NewHomeAddressRelationship("person", "address")
	q := qb.NewQuery()

	opts := mapping.MergeOptionsViaRelationship(rel).WithRelationshipLabel()
	require.NoError(t, m.MergeEntity(q, sample.WellKnownAddress("200 Isis Street"), opts))

	assert.Equal(t, "MERGE (person)-[:HOME_ADDRESS]->(address:Address)", q.Clauses()[0].String())
}

func TestMergeEntity_ViaRelationshipIdentifier(t *testing.T) {
	m := newMapper(t)
	rel := sample.NewHomeAddressRelationship("person", "address")

	q := qb.NewQuery()
	opts := mapping.MergeOptionsViaRelationship(rel)
	opts.Identifier = "home"
	err := m.MergeEntity(q, sample.WellKnownAddress("200 Isis Street"), opts)
	assert.ErrorIs(t, err, mapping.ErrIdentifierMismatch)
	assert.Empty(t, q.Text())

	q = qb.NewQuery()
	opts = mapping.MergeOptions{ViaRelationship: rel}
	require.NoError(t, m.MergeEntity(q, sample.WellKnownAddress("200 Isis Street"), opts))
	assert.Equal(t, "ON MATCH SET address.street = $addressstreet", q.Clauses()[1].String())

	q = qb.NewQuery()
	opts = mapping.MergeOptions{ViaRelationship: sample.NewHomeAddressRelationship("person", "")}
	err = m.MergeEntity(q, sample.WellKnownAddress("200 Isis Street"), opts)
	assert.ErrorIs(t, err, mapping.ErrMissingKey)
}

func TestMergeEntity_NoMergeProperties(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	opts := mapping.NewMergeOptions("p").WithNoMergeProperties().WithOnMatchProperties(mapping.NoProperties())
	require.NoError(t, m.MergeEntity(q, sample.WellKnownPerson(7), opts))

	assert.Equal(t, "MERGE (p:SecretAgent)\nON CREATE SET p = $pOnCreate", q.Text())
}

func TestMergeEntity_ConflictingParams(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	require.NoError(t, m.MergeEntity(q, sample.WellKnownPerson(7), mapping.MergeOptions{}))
	require.NoError(t, m.MergeEntity(q, sample.WellKnownPerson(7), mapping.MergeOptions{}))

	err := m.MergeEntity(q, sample.WellKnownPerson(8), mapping.MergeOptions{})
	assert.ErrorIs(t, err, qb.ErrParamConflict)
}

func TestMatchEntity(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	require.NoError(t, m.MatchEntity(q, sample.WellKnownPerson(7), mapping.MatchOptions{}))

	assert.Equal(t, "MATCH (person:SecretAgent {id:$personMatchKey.id})", q.Text())
	assert.Equal(t, "MATCH (person:SecretAgent {id:{\n  id: 7\n}.id})", q.FormattedDebugText())
}

func TestMatchEntity_PreAndPostCql(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	opts := mapping.NewMatchOptions("p")
	opts.PreCql = "(o:Organisation)<-[:WORKS_FOR]-"
	opts.PostCql = "-[:HAS_CHECKED_OUT]->(w)"
	require.NoError(t, m.MatchEntity(q, sample.WellKnownPerson(7), opts))

	assert.Equal(t, "MATCH (o:Organisation)<-[:WORKS_FOR]-(p:SecretAgent {id:$pMatchKey.id})-[:HAS_CHECKED_OUT]->(w)", q.Text())
}

func TestMatchEntity_ExplicitEmptyOverride(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	require.NoError(t, m.MatchEntity(q, sample.WellKnownPerson(7), mapping.MatchOptions{}.WithNoProperties()))

	assert.Equal(t, "MATCH (person:SecretAgent)", q.Text())
}

func TestOptionalMatchEntity(t *testing.T) {
	m := newMapper(t)
	person := sample.WellKnownPerson(7)
	q := qb.NewQuery()

	require.NoError(t, m.MatchEntity(q, person, mapping.MatchOptions{}))
	require.NoError(t, m.OptionalMatchEntity(q, person.HomeAddress, mapping.NewMatchOptions("ha").WithNoProperties()))

	assert.Equal(t, "MATCH (person:SecretAgent {id:{\n  id: 7\n}.id})\nOPTIONAL MATCH (ha:Address)", q.FormattedDebugText())
}

func TestMatchRelationship(t *testing.T) {
	m := newMapper(t)

	q := qb.NewQuery()
	require.NoError(t, m.MatchRelationship(q, sample.NewCheckedOutRelationship(), mapping.MatchRelationshipOptions{}))
	assert.Equal(t, "MATCH (agent)-[agentweapon:HAS_CHECKED_OUT]->(weapon)", q.Text())
	assert.Empty(t, q.ParamNames())

	rel := sample.NewHomeAddressRelationship("agent", "homeAddress")
	q = qb.NewQuery()
	require.NoError(t, m.MatchRelationship(q, rel, mapping.MatchRelationshipOptions{}))
	assert.Equal(t, "MATCH (agent)-[agenthomeAddress:HOME_ADDRESS {dateEffective:$agenthomeAddressMatchKey.dateEffective}]->(homeAddress)", q.Text())
	assert.Equal(t, []string{"agenthomeAddressMatchKey"}, q.ParamNames())
}

func TestOptionalMatchRelationship(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	opts := mapping.MatchRelationshipOptions{}.WithNoProperties()
	require.NoError(t, m.OptionalMatchRelationship(q, sample.NewHomeAddressRelationship("person", "address"), opts))

	assert.Equal(t, "OPTIONAL MATCH (person)-[personaddress:HOME_ADDRESS]->(address)", q.Text())
}

func TestMatchRelationship_Direction(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	rel := sample.NewWorkAddressRelationship("wa", "a")
	rel.Direction = qb.DirectionIn
	require.NoError(t, m.MatchRelationship(q, rel, mapping.MatchRelationshipOptions{}))

	assert.Equal(t, "MATCH (wa)<-[waa:WORK_ADDRESS]-(a)", q.Text())
}

func TestCreateEntity_SkipsNulls(t *testing.T) {
	m := newMapper(t)
	address := sample.WellKnownAddress("200 Isis Street")
	address.Suburb = nil
	q := qb.NewQuery()

	require.NoError(t, m.CreateEntity(q, address, mapping.CreateOptions{}))

	assert.Equal(t, "CREATE (address:Address $address)", q.Text())
	assert.Equal(t, "CREATE (address:Address {\n  street: \"200 Isis Street\"\n})", q.FormattedDebugText())
}

func TestCreateEntity_Person(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	require.NoError(t, m.CreateEntity(q, sample.WellKnownPerson(7), mapping.NewCreateOptions("a")))

	assert.Equal(t, "CREATE (a:SecretAgent $a)", q.Text())
	payload, ok := q.Param("a")
	require.True(t, ok)
	assert.Equal(t, []string{
		"id", "dateCreated", "name", "isOperative", "sex", "serialNumber", "spendingAuthorisation",
	}, payload.Object().Keys())
}

func TestCreateEntity_StructTags(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	require.NoError(t, m.CreateEntity(q, sample.WellKnownWeapon(1), mapping.NewCreateOptions("w")))

	assert.Equal(t, "CREATE (w:Weapon $w)", q.Text())
	assert.Equal(t, map[string]any{"w": map[string]any{"id": int64(1), "name": "Grenade", "blastRadius": "20m²"}}, q.Params())
}

func TestCreateRelationship(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	home := &sample.HomeAddressRelationship{BaseRelationship: mapping.NewKeyedRelationship("myHome", "a", "ha")}
	home.DateEffective = sample.WellKnownPerson(1).DateCreated
	require.NoError(t, m.CreateRelationship(q, home, mapping.CreateRelationshipOptions{}))
	require.NoError(t, m.CreateRelationship(q, sample.NewWorkAddressRelationship("a", "wa"), mapping.CreateRelationshipOptions{}))

	assert.Equal(t, "CREATE (a)-[myHome:HOME_ADDRESS $myHome]->(ha)\nCREATE (a)-[awa:WORK_ADDRESS]->(wa)", q.Text())
	assert.Equal(t, []string{"myHome"}, q.ParamNames())
}

func TestCreateRelationship_NoKey(t *testing.T) {
	m := newMapper(t)

	q := qb.NewQuery()
	work := &sample.WorkAddressRelationship{BaseRelationship: mapping.NewKeyedRelationship("", "a", "ha")}
	require.NoError(t, m.CreateRelationship(q, work, mapping.CreateRelationshipOptions{}))
	assert.Equal(t, "CREATE (a)-[:WORK_ADDRESS]->(ha)", q.Text())

	q = qb.NewQuery()
	home := &sample.HomeAddressRelationship{BaseRelationship: mapping.NewKeyedRelationship("", "a", "ha")}
	err := m.CreateRelationship(q, home, mapping.CreateRelationshipOptions{})
	assert.ErrorIs(t, err, mapping.ErrMissingKey)
	assert.Equal(t, 0, q.GetClauseCount())
}

func TestMergeRelationship_WithProperties(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	require.NoError(t, m.MergeRelationship(q, sample.NewWorksForRelationship("Field Agent"), mapping.MergeRelationshipOptions{}))

	assert.Equal(t, "MERGE (person)-[personorganisation:WORKS_FOR {role:$personorganisationMatchKey.role}]->(organisation)\n"+
		"ON MATCH SET personorganisation.role = $personorganisationrole\n"+
		"ON CREATE SET personorganisation = $personorganisationOnCreate", q.Text())
	assert.Equal(t, "Field Agent", q.Params()["personorganisationrole"])
}

func TestMergeRelationship_NoMergeProperties(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	opts := mapping.MergeRelationshipOptions{}.WithNoMergeProperties()
	require.NoError(t, m.MergeRelationship(q, sample.NewWorksForRelationship("Field Agent"), opts))

	assert.Equal(t, "MERGE (person)-[personorganisation:WORKS_FOR]->(organisation)\n"+
		"ON MATCH SET personorganisation.role = $personorganisationrole\n"+
		"ON CREATE SET personorganisation = $personorganisationOnCreate", q.Text())
	assert.Equal(t, []string{"personorganisationrole", "personorganisationOnCreate"}, q.ParamNames())
}

func TestMultiLabelIsVerbatim(t *testing.T) {
	type Thing struct {
		ID int `cypher:"match"`
	}
	reg := mapping.NewRegistry()
	reg.RegisterLabel(reflect.TypeFor[Thing](), "Multi:`Space Label`")
	m := mapping.NewMapper(reg)
	q := qb.NewQuery()

	require.NoError(t, m.MatchEntity(q, Thing{ID: 1}, mapping.MatchOptions{}))

	assert.Equal(t, "MATCH (thing:Multi:`Space Label` {iD:$thingMatchKey.iD})", q.Text())
}

func TestRegistry_DiscoversTags(t *testing.T) {
	reg := mapping.NewRegistry()

	assert.Equal(t, mapping.Properties{{Name: "ID", WireName: "id"}}, mapping.PropertiesOf[sample.Weapon](reg, mapping.PurposeMatch))
	assert.Equal(t, []string{"id", "name", "blastRadius"}, mapping.PropertiesOf[sample.Weapon](reg, mapping.PurposeMergeOnCreate).WireNames())
	assert.Equal(t, "Weapon", reg.Label(sample.Weapon{}))
	assert.Equal(t, "HOME_ADDRESS", reg.Label(&sample.HomeAddressRelationship{}))
	assert.Equal(t, "Address", reg.Label(&sample.Address{}))
}

func TestRegistry_UntaggedTypeHasNoProperties(t *testing.T) {
	reg := mapping.NewRegistry()

	props := mapping.PropertiesOf[sample.Address](reg, mapping.PurposeMatch)
	assert.NotNil(t, props)
	assert.Empty(t, props)
}

func TestRegistry_NamingPolicy(t *testing.T) {
	reg := mapping.NewRegistry(mapping.WithNamingPolicy(casing.SnakeCase))

	assert.Equal(t, []string{"id", "name", "blast_radius"}, mapping.PropertiesOf[sample.Weapon](reg, mapping.PurposeMergeOnCreate).WireNames())
}

func TestRegistry_CacheIsStable(t *testing.T) {
	reg := mapping.NewRegistry()
	weapon := reflect.TypeFor[sample.Weapon]()

	first := reg.PropertiesForPurpose(weapon, mapping.PurposeMergeOnCreate)
	first[0].WireName = "mutated"
	second := reg.PropertiesForPurpose(reflect.TypeFor[*sample.Weapon](), mapping.PurposeMergeOnCreate)

	assert.Equal(t, "id", second[0].WireName)
	assert.Equal(t, []reflect.Type{weapon}, reg.Types())
}

func TestRegistry_RegisterPropertiesReplaces(t *testing.T) {
	reg := mapping.NewRegistry()
	weapon := reflect.TypeFor[sample.Weapon]()

	_ = reg.PropertiesForPurpose(weapon, mapping.PurposeMatch)
	reg.RegisterProperties(weapon, mapping.PurposeMatch, mapping.Properties{{Name: "Name", WireName: "name"}})

	assert.Equal(t, []string{"name"}, reg.PropertiesForPurpose(weapon, mapping.PurposeMatch).WireNames())
}

func TestRegistry_ConcurrentDiscovery(t *testing.T) {
	reg := mapping.NewRegistry()
	weapon := reflect.TypeFor[sample.Weapon]()

	var wg sync.WaitGroup
	results := make([]mapping.Properties, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = reg.PropertiesForPurpose(weapon, mapping.Purposes[i%len(mapping.Purposes)])
		}(i)
	}
	wg.Wait()

	for i, props := range results {
		assert.Equal(t, reg.PropertiesForPurpose(weapon, mapping.Purposes[i%len(mapping.Purposes)]), props)
	}
}

func TestRegistry_ConcurrentLabelDiscovery(t *testing.T) {
	reg := mapping.NewRegistry()
	weapon := reflect.TypeFor[sample.Weapon]()

	var wg sync.WaitGroup
	labels := make([]string, 64)
	for i := range labels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			labels[i] = reg.LabelFor(weapon)
		}(i)
	}
	wg.Wait()

	for _, label := range labels {
		assert.Equal(t, "Weapon", label)
	}
}

func TestRegistry_RegisteredLabelSurvivesConcurrentDiscovery(t *testing.T) {
	reg := mapping.NewRegistry()
	weapon := reflect.TypeFor[sample.Weapon]()

	var wg sync.WaitGroup
	registered := make(chan struct{})
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i == 32 {
				reg.RegisterLabel(weapon, "Armament")
				close(registered)
				return
			}
			label := reg.LabelFor(weapon)
			assert.Contains(t, []string{"Weapon", "Armament"}, label)
		}(i)
	}
	wg.Wait()

	<-registered
	assert.Equal(t, "Armament", reg.LabelFor(weapon))
	assert.Equal(t, "Armament", reg.Label(sample.WellKnownWeapon(1)))
}

func TestRegistry_Describe(t *testing.T) {
	reg := mapping.NewRegistry()

	assert.Equal(t, "sample.Weapon :Weapon match=[id] merge=[id] oncreate=[id name blastRadius] onmatch=[name blastRadius]",
		reg.Describe(reflect.TypeFor[*sample.Weapon]()))
}

func TestIdentifier(t *testing.T) {
	reg := mapping.NewRegistry()

	assert.Equal(t, "person", reg.Identifier(&sample.Person{}, ""))
	assert.Equal(t, "homeaddressrelationship", reg.Identifier(sample.HomeAddressRelationship{}, ""))
	assert.Equal(t, "a", reg.Identifier(&sample.Person{}, "a"))
}

func TestPropertyError(t *testing.T) {
	reg := mapping.NewRegistry()
	reg.RegisterProperties(reflect.TypeFor[sample.Weapon](), mapping.PurposeMatch, mapping.Properties{{Name: "Missing", WireName: "missing"}})
	m := mapping.NewMapper(reg)
	q := qb.NewQuery()

	err := m.MatchEntity(q, sample.WellKnownWeapon(1), mapping.MatchOptions{})

	var propErr *mapping.PropertyError
	require.True(t, errors.As(err, &propErr))
	assert.Equal(t, "Missing", propErr.Property)
	assert.ErrorIs(t, err, mapping.ErrPropertyNotFound)
	assert.Equal(t, 0, q.GetClauseCount())
}

func TestEntityValidation(t *testing.T) {
	m := newMapper(t)
	q := qb.NewQuery()

	assert.ErrorIs(t, m.MatchEntity(q, nil, mapping.MatchOptions{}), mapping.ErrNilEntity)
	assert.ErrorIs(t, m.MatchEntity(q, (*sample.Person)(nil), mapping.MatchOptions{}), mapping.ErrNilEntity)
	assert.ErrorIs(t, m.MatchEntity(q, 42, mapping.MatchOptions{}), mapping.ErrNotStruct)
}

func TestUseProperties(t *testing.T) {
	m := newMapper(t)

	props, err := m.UseProperties(sample.WellKnownWeapon(1), "Name", "ID", "Name")
	require.NoError(t, err)
	assert.Equal(t, mapping.Properties{{Name: "Name", WireName: "name"}, {Name: "ID", WireName: "id"}}, props)

	q := qb.NewQuery()
	require.NoError(t, m.MatchEntity(q, sample.WellKnownWeapon(1), mapping.NewMatchOptions("w").WithProperties(props)))
	assert.Equal(t, "MATCH (w:Weapon {name:$wMatchKey.name,id:$wMatchKey.id})", q.Text())

	_, err = m.UseProperties(sample.WellKnownWeapon(1), "Calibre")
	assert.ErrorIs(t, err, mapping.ErrPropertyNotFound)
}

func TestToCypherString(t *testing.T) {
	m := newMapper(t)

	s, err := m.ToCypherString(sample.WellKnownWeapon(1), mapping.PurposeMatch, "w", nil)
	require.NoError(t, err)
	assert.Equal(t, "w:Weapon {id:$wMatchKey.id}", s)

	s, err = m.ToCypherString(sample.WellKnownPerson(1), mapping.PurposeMerge, "", mapping.NoProperties())
	require.NoError(t, err)
	assert.Equal(t, "person:SecretAgent", s)
}

type coverIdentity struct {
	ID        int    `cypher:"merge,name=id"`
	FirstName string `cypher:"onmatch,name=first-name"`
	Firstname string `cypher:"onmatch,name=firstname"`
}

func TestMergeEntity_OnMatchParamsStayDistinct(t *testing.T) {
	m := mapping.NewMapper(mapping.NewRegistry())
	q := qb.NewQuery()

	require.NoError(t, m.MergeEntity(q, coverIdentity{ID: 1, FirstName: "Sterling", Firstname: "Malory"}, mapping.NewMergeOptions("agent")))

	assert.Equal(t, "MERGE (agent:coverIdentity {id:$agentMatchKey.id})\n"+
		"ON MATCH SET agent.`first-name` = $agentfirstname\n"+
		"ON MATCH SET agent.firstname = $agentfirstname_2", q.Text())

	params := q.Params()
	assert.Equal(t, "Sterling", params["agentfirstname"])
	assert.Equal(t, "Malory", params["agentfirstname_2"])
}

type reservedNames struct {
	ID       int    `cypher:"merge,name=id"`
	MatchKey string `cypher:"onmatch,oncreate,name=MatchKey"`
	OnCreate string `cypher:"onmatch,oncreate,name=OnCreate"`
}

func TestMergeEntity_OnMatchParamsAvoidReservedNames(t *testing.T) {
	m := mapping.NewMapper(mapping.NewRegistry())
	q := qb.NewQuery()

	require.NoError(t, m.MergeEntity(q, reservedNames{ID: 3, MatchKey: "mk", OnCreate: "oc"}, mapping.NewMergeOptions("r")))

	assert.Equal(t, "MERGE (r:reservedNames {id:$rMatchKey.id})\n"+
		"ON MATCH SET r.MatchKey = $rMatchKey_2\n"+
		"ON MATCH SET r.OnCreate = $rOnCreate_2\n"+
		"ON CREATE SET r = $rOnCreate", q.Text())

	params := q.Params()
	assert.Equal(t, map[string]any{"id": int64(3)}, params["rMatchKey"])
	assert.Equal(t, "mk", params["rMatchKey_2"])
	assert.Equal(t, "oc", params["rOnCreate_2"])
	assert.Equal(t, map[string]any{"MatchKey": "mk", "OnCreate": "oc", "id": int64(3)}, params["rOnCreate"])
}
