package extract

// SyntheticDocument returns a realistic PowerCenter repository export
// for demos and tests: two sources, three transformations, one target
// and one mapping, nested inside the usual REPOSITORY/FOLDER wrapper.
func SyntheticDocument() string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<POWERMART CREATION_DATE="12/15/2023 10:30:00" REPOSITORY_VERSION="9.6.1">
    <REPOSITORY NAME="SALES_DW_REPO" VERSION="1.0" CODEPAGE="UTF-8">
        <FOLDER NAME="SALES_ETL" GROUP="" OWNER="admin" SHARED="NOTSHARED">

            <SOURCE BUSINESSNAME="" DATABASETYPE="Oracle" NAME="SRC_CUSTOMERS"
                    OWNERNAME="SALES_DB" VERSIONNUMBER="1">
                <SOURCEFIELD NAME="CUSTOMER_ID" DATATYPE="string" LENGTH="50"/>
                <SOURCEFIELD NAME="CUSTOMER_NAME" DATATYPE="string" LENGTH="100"/>
                <SOURCEFIELD NAME="CUSTOMER_STATUS" DATATYPE="string" LENGTH="10"/>
            </SOURCE>

            <SOURCE BUSINESSNAME="" DATABASETYPE="Oracle" NAME="SRC_ORDERS"
                    OWNERNAME="SALES_DB" VERSIONNUMBER="1">
                <SOURCEFIELD NAME="ORDER_ID" DATATYPE="decimal" LENGTH="10"/>
                <SOURCEFIELD NAME="CUSTOMER_ID" DATATYPE="string" LENGTH="50"/>
                <SOURCEFIELD NAME="ORDER_DATE" DATATYPE="date/time" LENGTH="19"/>
                <SOURCEFIELD NAME="ORDER_AMOUNT" DATATYPE="decimal" LENGTH="15"/>
            </SOURCE>

            <TRANSFORMATION DESCRIPTION="Filter active customers" NAME="FLT_ACTIVE_CUSTOMERS"
                           OBJECTVERSION="1" TYPE="Filter" VERSIONNUMBER="1">
                <TRANSFORMFIELD NAME="CUSTOMER_ID" PORTTYPE="INPUT" DATATYPE="string" LENGTH="50"/>
                <TRANSFORMFIELD NAME="CUSTOMER_NAME" PORTTYPE="INPUT" DATATYPE="string" LENGTH="100"/>
                <TRANSFORMFIELD NAME="CUSTOMER_STATUS" PORTTYPE="INPUT" DATATYPE="string" LENGTH="10"/>
                <TRANSFORMFIELD NAME="CUSTOMER_ID" PORTTYPE="OUTPUT" DATATYPE="string" LENGTH="50"/>
                <TRANSFORMFIELD NAME="CUSTOMER_NAME" PORTTYPE="OUTPUT" DATATYPE="string" LENGTH="100"/>
            </TRANSFORMATION>

            <TRANSFORMATION DESCRIPTION="Lookup customer details" NAME="LKP_CUSTOMER_DETAILS"
                           OBJECTVERSION="1" TYPE="Lookup" VERSIONNUMBER="1">
                <TRANSFORMFIELD NAME="CUSTOMER_ID" PORTTYPE="INPUT" DATATYPE="string" LENGTH="50"/>
                <TRANSFORMFIELD NAME="CUSTOMER_NAME" PORTTYPE="OUTPUT" DATATYPE="string" LENGTH="100"/>
                <TRANSFORMFIELD NAME="CUSTOMER_TIER" PORTTYPE="OUTPUT" DATATYPE="string" LENGTH="20"/>
            </TRANSFORMATION>

            <TRANSFORMATION DESCRIPTION="Calculate order metrics" NAME="AGG_ORDER_SUMMARY"
                           OBJECTVERSION="1" TYPE="Aggregator" VERSIONNUMBER="1">
                <TRANSFORMFIELD NAME="CUSTOMER_ID" PORTTYPE="INPUT" DATATYPE="string" LENGTH="50"/>
                <TRANSFORMFIELD NAME="ORDER_AMOUNT" PORTTYPE="INPUT" DATATYPE="decimal" LENGTH="15"/>
                <TRANSFORMFIELD NAME="CUSTOMER_ID" PORTTYPE="OUTPUT" DATATYPE="string" LENGTH="50"/>
                <TRANSFORMFIELD NAME="TOTAL_ORDERS" PORTTYPE="OUTPUT" DATATYPE="decimal" LENGTH="10"/>
                <TRANSFORMFIELD NAME="AVG_ORDER_VALUE" PORTTYPE="OUTPUT" DATATYPE="decimal" LENGTH="15"/>
            </TRANSFORMATION>

            <TARGET BUSINESSNAME="" DATABASETYPE="Oracle" NAME="TGT_CUSTOMER_SUMMARY"
                   OWNERNAME="DW_SCHEMA" VERSIONNUMBER="1">
                <TARGETFIELD NAME="CUSTOMER_ID" DATATYPE="string" LENGTH="50"/>
                <TARGETFIELD NAME="CUSTOMER_NAME" DATATYPE="string" LENGTH="100"/>
                <TARGETFIELD NAME="CUSTOMER_TIER" DATATYPE="string" LENGTH="20"/>
                <TARGETFIELD NAME="TOTAL_ORDERS" DATATYPE="decimal" LENGTH="10"/>
                <TARGETFIELD NAME="AVG_ORDER_VALUE" DATATYPE="decimal" LENGTH="15"/>
            </TARGET>

            <MAPPING DESCRIPTION="Customer summary ETL mapping" NAME="m_CUSTOMER_SUMMARY"
                    OBJECTVERSION="1" VERSIONNUMBER="1" ISVALID="YES">
                <SHORTCUT FOLDERNAME="SALES_ETL" NAME="SRC_CUSTOMERS" OBJECTTYPE="Source"/>
                <SHORTCUT FOLDERNAME="SALES_ETL" NAME="SRC_ORDERS" OBJECTTYPE="Source"/>
                <SHORTCUT FOLDERNAME="SALES_ETL" NAME="TGT_CUSTOMER_SUMMARY" OBJECTTYPE="Target"/>
            </MAPPING>

        </FOLDER>
    </REPOSITORY>
</POWERMART>`
}
