package wsdl

import (
	"testing"

	"github.com/QTest-hq/dtsgen/internal/xmltree"
	"github.com/QTest-hq/dtsgen/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const svcWSDL = `<?xml version="1.0" encoding="UTF-8"?>
<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"
    xmlns:xsd="http://www.w3.org/2001/XMLSchema"
    xmlns:tns="urn:svc">
  <wsdl:types>
    <xsd:schema targetNamespace="urn:svc">
      <xsd:complexType name="GetResp">
        <xsd:sequence>
          <xsd:element name="value" type="xsd:string" minOccurs="0"/>
        </xsd:sequence>
      </xsd:complexType>
    </xsd:schema>
  </wsdl:types>
  <wsdl:portType name="Svc">
    <wsdl:operation name="Get">
      <wsdl:input message="tns:GetMsg"/>
      <wsdl:output message="tns:GetResp"/>
    </wsdl:operation>
  </wsdl:portType>
  <wsdl:binding name="SvcBinding" type="tns:Svc"/>
  <wsdl:service name="SvcService"/>
</wsdl:definitions>`

func parse(t *testing.T, doc string, basicTypes ...string) *model.PackageElement {
	t.Helper()
	node, err := xmltree.ParseBytes([]byte(doc))
	require.NoError(t, err)

	pkg, err := NewParser(basicTypes...).Parse(node)
	require.NoError(t, err)
	return pkg
}

func TestParse_NilDocument(t *testing.T) {
	pkg, err := NewParser().Parse(nil)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Nil(t, pkg)
}

func TestParse_RoundTripDocument(t *testing.T) {
	pkg := parse(t, svcWSDL)

	assert.Equal(t, "Svc", pkg.Name)
	require.Len(t, pkg.Elements, 2)

	// document order: types first, then portType
	resp, ok := pkg.Elements[0].(*model.InterfaceElement)
	require.True(t, ok)
	assert.Equal(t, "GetResp", resp.Name)
	require.Len(t, resp.Properties, 1)
	assert.Equal(t, "value", resp.Properties[0].Name)
	assert.True(t, resp.Properties[0].Optional)
	assert.False(t, resp.Properties[0].Array)
	assert.Equal(t, []model.ParameterTypeElement{{Name: "string"}}, resp.Properties[0].Types)

	client, ok := pkg.Elements[1].(*model.InterfaceElement)
	require.True(t, ok)
	assert.Equal(t, ServiceClientName, client.Name)
	require.Len(t, client.Methods, 1)

	get := client.Methods[0]
	assert.Equal(t, "Get", get.Name)
	require.Len(t, get.Parameters, 2)

	assert.Equal(t, "input", get.Parameters[0].Name)
	assert.False(t, get.Parameters[0].Callback)
	assert.Equal(t, []model.ParameterTypeElement{{Name: "GetMsg"}}, get.Parameters[0].Types)

	completed := get.Parameters[1]
	assert.Equal(t, CompletedParameter, completed.Name)
	assert.True(t, completed.Callback)
	require.Len(t, completed.Parameters, 1)
	assert.Equal(t, "output", completed.Parameters[0].Name)
	assert.Equal(t, []model.ParameterTypeElement{{Name: "GetResp"}}, completed.Parameters[0].Types)
}

func TestParse_OutputAndFaultShareCallback(t *testing.T) {
	pkg := parse(t, `<definitions>
  <portType name="Orders">
    <operation name="Submit">
      <input message="tns:SubmitRequest"/>
      <output message="tns:SubmitResponse"/>
      <fault name="err" message="tns:SubmitFault"/>
    </operation>
    <operation name="Ping"/>
  </portType>
</definitions>`)

	require.Len(t, pkg.Elements, 1)
	client := pkg.Elements[0].(*model.InterfaceElement)
	require.Len(t, client.Methods, 2)

	submit := client.Methods[0]
	require.Len(t, submit.Parameters, 2)
	completed := submit.Parameters[1]
	require.Len(t, completed.Parameters, 2)
	assert.Equal(t, "output", completed.Parameters[0].Name)
	assert.Equal(t, "SubmitResponse", completed.Parameters[0].Types[0].Name)
	assert.Equal(t, "fault", completed.Parameters[1].Name)
	assert.Equal(t, "SubmitFault", completed.Parameters[1].Types[0].Name)

	ping := client.Methods[1]
	assert.Equal(t, "Ping", ping.Name)
	assert.Empty(t, ping.Parameters)
}

func TestParse_SchemaElements(t *testing.T) {
	pkg := parse(t, `<definitions>
  <types>
    <schema>
      <element name="GetRequest" type="tns:GetRequestType"/>
      <element name="Bare"/>
      <complexType name="Order">
        <sequence>
          <element name="id" type="xsd:long"/>
          <element name="lines" type="tns:order.Line" maxOccurs="unbounded" minOccurs="0"/>
        </sequence>
      </complexType>
      <complexType name="Money">
        <simpleContent>
          <extension base="xsd:decimal"/>
        </simpleContent>
      </complexType>
      <attributeGroup name="ignored"/>
    </schema>
  </types>
</definitions>`)

	require.Len(t, pkg.Elements, 4)

	req := pkg.Elements[0].(*model.InterfaceElement)
	assert.Equal(t, "GetRequest", req.Name)
	assert.Equal(t, []string{"GetRequestType"}, req.Extends)

	bare := pkg.Elements[1].(*model.InterfaceElement)
	assert.Equal(t, "Bare", bare.Name)
	assert.Empty(t, bare.Extends)

	order := pkg.Elements[2].(*model.InterfaceElement)
	require.Len(t, order.Properties, 2)
	assert.False(t, order.Properties[0].Optional)
	assert.Equal(t, "long", order.Properties[0].Types[0].Name)
	assert.True(t, order.Properties[1].Optional)
	assert.True(t, order.Properties[1].Array)
	assert.Equal(t, "order_Line", order.Properties[1].Types[0].Name)

	money := pkg.Elements[3].(*model.TypedefElement)
	assert.Equal(t, "Money", money.Name)
	assert.Equal(t, []model.ParameterTypeElement{{Name: "decimal"}}, money.Types)
}

func TestParse_SimpleTypes(t *testing.T) {
	pkg := parse(t, `<definitions>
  <types>
    <schema>
      <simpleType name="Status">
        <restriction base="xsd:string">
          <enumeration value="A"/>
          <enumeration value="B"/>
        </restriction>
      </simpleType>
      <simpleType name="Code">
        <restriction base="xsd:int"/>
      </simpleType>
      <simpleType name="string">
        <restriction base="xsd:string"/>
      </simpleType>
    </schema>
  </types>
</definitions>`, DefaultBasicTypes...)

	require.Len(t, pkg.Elements, 2)

	status := pkg.Elements[0].(*model.TypedefElement)
	assert.Equal(t, "Status", status.Name)
	assert.Equal(t, []model.ParameterTypeElement{{Name: `"A"`}, {Name: `"B"`}}, status.Types)

	code := pkg.Elements[1].(*model.TypedefElement)
	assert.Equal(t, "Code", code.Name)
	assert.Equal(t, []model.ParameterTypeElement{{Name: "int"}}, code.Types)
}

func TestParse_BasicTypeNotSkippedWithoutList(t *testing.T) {
	pkg := parse(t, `<definitions><types><schema>
      <simpleType name="string"><restriction base="xsd:string"/></simpleType>
    </schema></types></definitions>`)

	require.Len(t, pkg.Elements, 1)
	assert.Equal(t, "string", pkg.Elements[0].ElementName())
}

func TestParse_NoDefinitions(t *testing.T) {
	pkg := parse(t, `<schema/>`)
	assert.Equal(t, "", pkg.Name)
	assert.Empty(t, pkg.Elements)
}
