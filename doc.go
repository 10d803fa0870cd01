// Package lsx decodes LSX resource documents into typed node trees.
//
// A document is a save element holding regions; each region holds node elements
// with typed attribute elements and an optional children container:
//
//	<save>
//	  <region id="Templates">
//	    <node id="GameObjects">
//	      <attributes>
//	        <attribute id="MapKey" type="22" value="ABC123"/>
//	      </attributes>
//	      <children/>
//	    </node>
//	  </region>
//	</save>
//
// BuildNode turns one node element into a Node, resolving numeric type codes through
// lsxtype and decoding values through attrvalue. FindNodeByAttribute scans an
// ElementStream for the first node in a region carrying a given key attribute value,
// skipping other regions without building them.
package lsx
